package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findingTitles(findings []Finding) []string {
	titles := make([]string, 0, len(findings))
	for _, f := range findings {
		titles = append(titles, f.Title)
	}
	return titles
}

func TestAnalyzeSecurity_HardcodedCredentials(t *testing.T) {
	code := `api_key = "sk_live_abcdef123456"
password = "hunter2"`
	findings := AnalyzeSecurity(code, "python")

	titles := findingTitles(findings)
	assert.Contains(t, titles, "Hardcoded API Key")
	assert.Contains(t, titles, "Hardcoded Password")

	for _, f := range findings {
		switch f.Title {
		case "Hardcoded API Key":
			assert.Equal(t, SeverityHigh, f.Severity)
			assert.Equal(t, 1, f.LineNumber)
			assert.Equal(t, `Line 1: api_key = "sk_live_abcdef123456"`, f.Excerpt)
		case "Hardcoded Password":
			assert.Equal(t, SeverityCritical, f.Severity)
			assert.Equal(t, 2, f.LineNumber)
		}
	}
}

func TestAnalyzeSecurity_InsecureRandomness(t *testing.T) {
	findings := AnalyzeSecurity("token = Math.random()", "javascript")
	titles := findingTitles(findings)
	assert.Contains(t, titles, "Insecure Randomness")
}

func TestAnalyzeSecurity_JavaScriptRules(t *testing.T) {
	code := `eval(userInput);
el.innerHTML = data;
document.write(data);`
	findings := AnalyzeSecurity(code, "JavaScript")

	titles := findingTitles(findings)
	assert.Contains(t, titles, "Use of eval()")
	assert.Contains(t, titles, "Potential XSS via innerHTML")
	assert.Contains(t, titles, "Use of document.write()")
}

func TestAnalyzeSecurity_PythonShellInjection(t *testing.T) {
	findings := AnalyzeSecurity(`subprocess.run(cmd, shell=True)`, "python")
	require.Len(t, findings, 1)
	assert.Equal(t, "Use of shell=True in subprocess", findings[0].Title)
	assert.Equal(t, SeverityHigh, findings[0].Severity)
	assert.NotEmpty(t, findings[0].Reference)
}

func TestAnalyzeSecurity_LanguageScoping(t *testing.T) {
	// eval() is only flagged for JavaScript and TypeScript, not for SQL.
	findings := AnalyzeSecurity("eval(x)", "sql")
	assert.NotContains(t, findingTitles(findings), "Use of eval()")
}

func TestAnalyzeSecurity_SQLRules(t *testing.T) {
	code := "SELECT * FROM users;\nGRANT ALL ON db.* TO 'app';"
	findings := AnalyzeSecurity(code, "SQL")

	titles := findingTitles(findings)
	assert.Contains(t, titles, "Use of SELECT *")
	assert.Contains(t, titles, "Overly Permissive Grants")
}

func TestAnalyzeSecurity_UniqueFindingIDs(t *testing.T) {
	code := "eval(a);\neval(b);"
	findings := AnalyzeSecurity(code, "javascript")
	require.Len(t, findings, 2)
	assert.NotEqual(t, findings[0].ID, findings[1].ID)
	assert.Equal(t, 1, findings[0].LineNumber)
	assert.Equal(t, 2, findings[1].LineNumber)
}

func TestAnalyzeSecurity_CleanCode(t *testing.T) {
	findings := AnalyzeSecurity("func add(a, b int) int { return a + b }", "go")
	assert.Empty(t, findings)
}

func TestSecurityScore(t *testing.T) {
	cases := []struct {
		critical, high, medium, low int
		want                        int
	}{
		{0, 0, 0, 0, 100},
		{1, 0, 0, 0, 75},
		{0, 1, 1, 1, 73},
		{4, 0, 0, 0, 0},
		{2, 2, 2, 2, 0},
	}
	for _, c := range cases {
		got := SecurityScore(c.critical, c.high, c.medium, c.low)
		assert.Equalf(t, c.want, got, "SecurityScore(%d,%d,%d,%d)", c.critical, c.high, c.medium, c.low)
	}
}

func TestNewScan_DerivesCountsAndScore(t *testing.T) {
	findings := []Finding{
		{Title: "a", Severity: SeverityCritical},
		{Title: "b", Severity: SeverityHigh},
		{Title: "c", Severity: SeverityMedium},
		{Title: "d", Severity: SeverityLow},
	}
	scan := NewScan(7, findings)

	assert.Equal(t, int64(7), scan.SnippetID())
	assert.Equal(t, ScannerName, scan.Scanner())
	assert.Equal(t, 1, scan.CriticalCount())
	assert.Equal(t, 1, scan.HighCount())
	assert.Equal(t, 1, scan.MediumCount())
	assert.Equal(t, 1, scan.LowCount())
	assert.Equal(t, 48, scan.Score())
	assert.Len(t, scan.Findings(), 4)
}
