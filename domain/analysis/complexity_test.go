package analysis

import (
	"strings"
	"testing"
)

func TestCyclomatic_JavaScript(t *testing.T) {
	code := `function search(items, target) {
	for (let i = 0; i < items.length; i++) {
		if (items[i] === target) {
			return i;
		} else if (items[i] > target) {
			break;
		}
	}
	return -1;
}`
	// base 1 + for + if + else if + the nested if( inside "else if("
	got := Cyclomatic(code, "JavaScript")
	if got != 5 {
		t.Fatalf("Cyclomatic = %d, want 5", got)
	}
}

func TestCyclomatic_Python(t *testing.T) {
	code := `def classify(n):
    if n < 0:
        return "negative"
    elif n == 0:
        return "zero"
    for i in range(n):
        while i > 10:
            break
    return "positive"`
	got := Cyclomatic(code, "Python")
	if got != 5 {
		t.Fatalf("Cyclomatic = %d, want 5", got)
	}
}

func TestCyclomatic_StraightLine(t *testing.T) {
	if got := Cyclomatic("x = 1\ny = 2", "python"); got != 1 {
		t.Fatalf("Cyclomatic = %d, want 1", got)
	}
}

func TestComplexityLevel_Bands(t *testing.T) {
	cases := []struct {
		complexity int
		want       string
	}{
		{1, "Low - Easy to maintain and understand"},
		{5, "Low - Easy to maintain and understand"},
		{6, "Moderate - Reasonably maintainable"},
		{10, "Moderate - Reasonably maintainable"},
		{11, "High - More difficult to maintain, consider refactoring"},
		{20, "High - More difficult to maintain, consider refactoring"},
		{21, "Very High - Difficult to maintain, refactoring recommended"},
	}
	for _, c := range cases {
		if got := ComplexityLevel(c.complexity); got != c.want {
			t.Errorf("ComplexityLevel(%d) = %q, want %q", c.complexity, got, c.want)
		}
	}
}

func TestNestingDepth_Braces(t *testing.T) {
	code := `function f() {
	if (a) {
		if (b) {
			return 1;
		}
	}
}`
	if got := NestingDepth(code, "javascript"); got != 3 {
		t.Fatalf("NestingDepth = %d, want 3", got)
	}
}

func TestNestingDepth_Python(t *testing.T) {
	code := `def f(items):
    for item in items:
        if item:
            while item > 0:
                item -= 1`
	if got := NestingDepth(code, "python"); got != 3 {
		t.Fatalf("NestingDepth = %d, want 3", got)
	}
}

func TestCountFunctions(t *testing.T) {
	cases := []struct {
		name     string
		code     string
		language string
		want     int
	}{
		{
			name:     "javascript mixed styles",
			code:     "function add(a, b) { return a + b; }\nconst mul = function(a, b) { return a * b; };\nconst obj = { load: function() {} };",
			language: "JavaScript",
			want:     3,
		},
		{
			name:     "python defs",
			code:     "def one():\n    pass\n\ndef two():\n    pass",
			language: "Python",
			want:     2,
		},
		{
			name:     "ruby defs",
			code:     "def greet\nend\n\ndef farewell\nend",
			language: "Ruby",
			want:     2,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CountFunctions(c.code, c.language); got != c.want {
				t.Fatalf("CountFunctions = %d, want %d", got, c.want)
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	if got := CountLines("a\nb\nc"); got != 3 {
		t.Fatalf("CountLines = %d, want 3", got)
	}
	if got := CountLines("single"); got != 1 {
		t.Fatalf("CountLines = %d, want 1", got)
	}
}

func TestComplexityReport_Lines(t *testing.T) {
	report := ComplexityReport{Cyclomatic: 7, NestingDepth: 4, FunctionCount: 2, LineCount: 42}
	lines := report.Lines()

	joined := strings.Join(lines, "\n")
	for _, want := range []string{
		"Cyclomatic Complexity: 7",
		"Complexity Level: Moderate - Reasonably maintainable",
		"Maximum Nesting Depth: 4",
		"Note: Deep nesting can reduce code readability.",
		"Function/Method Count: 2",
		"Line Count: 42",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("report lines missing %q in:\n%s", want, joined)
		}
	}
}

func TestComplexityReport_Lines_LargeFile(t *testing.T) {
	report := ComplexityReport{LineCount: 301}
	joined := strings.Join(report.Lines(), "\n")
	if !strings.Contains(joined, "Note: Large file size may indicate a need to split functionality.") {
		t.Fatalf("expected large file note in:\n%s", joined)
	}
}
