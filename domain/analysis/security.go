package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// securityRule describes one vulnerability pattern. An empty languages
// slice applies the rule to every language.
type securityRule struct {
	languages      []string
	pattern        *regexp.Regexp
	title          string
	severity       Severity
	description    string
	recommendation string
	reference      string
}

var securityRules = []securityRule{
	// Cross-cutting rules.
	{
		pattern:        regexp.MustCompile(`(?i)(?:api|access|secret|auth|jwt|token|key)[\w_\-]*\s*(?:=|:)\s*['"]([A-Za-z0-9_\-.=]{8,})['"]`),
		title:          "Hardcoded API Key",
		severity:       SeverityHigh,
		description:    "Hardcoded API keys pose a security risk if the code is shared or exposed. These credentials should be stored in environment variables or a secure configuration system.",
		recommendation: "Move API keys to environment variables or a secure secret management system.",
		reference:      "https://owasp.org/www-community/vulnerabilities/Hardcoded_credentials",
	},
	{
		pattern:        regexp.MustCompile(`(?i)(?:password|passwd|pwd|secret|credentials)[\w_\-]*\s*(?:=|:)\s*['"]([^'"]{4,})['"]`),
		title:          "Hardcoded Password",
		severity:       SeverityCritical,
		description:    "Hardcoded passwords are a serious security vulnerability. Passwords should never be stored in source code.",
		recommendation: "Use environment variables, secure credential stores, or identity management systems instead of hardcoding passwords.",
		reference:      "https://owasp.org/www-community/vulnerabilities/Hardcoded_credentials",
	},
	{
		pattern:        regexp.MustCompile(`\b(?:Math\.random\(\)|random\.random\(\)|new Random\(\))`),
		title:          "Insecure Randomness",
		severity:       SeverityMedium,
		description:    "Using standard random number generators for security-sensitive operations is unsafe. These generators are not cryptographically secure.",
		recommendation: "Use cryptographically secure random number generators for security operations.",
		reference:      "https://owasp.org/www-community/vulnerabilities/Insecure_Randomness",
	},

	// JavaScript / TypeScript.
	{
		languages:      []string{"javascript", "typescript"},
		pattern:        regexp.MustCompile(`\beval\s*\(`),
		title:          "Use of eval()",
		severity:       SeverityHigh,
		description:    "The eval() function executes arbitrary JavaScript code, which can lead to code injection vulnerabilities if the input is not properly sanitized.",
		recommendation: "Avoid using eval(). Consider safer alternatives such as JSON.parse() for JSON data.",
		reference:      "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/eval#never_use_eval!",
	},
	{
		languages:      []string{"javascript", "typescript"},
		pattern:        regexp.MustCompile(`\.innerHTML\s*=`),
		title:          "Potential XSS via innerHTML",
		severity:       SeverityMedium,
		description:    "Using innerHTML with untrusted data can lead to Cross-Site Scripting (XSS) vulnerabilities.",
		recommendation: "Use textContent instead of innerHTML when dealing with untrusted data, or use a DOM API like document.createElement() to create elements safely.",
		reference:      "https://owasp.org/www-community/attacks/xss/",
	},
	{
		languages:      []string{"javascript", "typescript"},
		pattern:        regexp.MustCompile(`document\.write\s*\(`),
		title:          "Use of document.write()",
		severity:       SeverityMedium,
		description:    "Using document.write() can lead to XSS vulnerabilities if user input is not properly sanitized.",
		recommendation: "Avoid using document.write() and use DOM manipulation methods instead.",
		reference:      "https://developer.mozilla.org/en-US/docs/Web/API/Document/write#notes",
	},

	// Python.
	{
		languages:      []string{"python"},
		pattern:        regexp.MustCompile(`\b(?:exec|eval)\s*\(`),
		title:          "Use of exec() or eval()",
		severity:       SeverityHigh,
		description:    "The exec() and eval() functions execute arbitrary Python code, which can lead to code injection vulnerabilities if the input is not properly sanitized.",
		recommendation: "Avoid using exec() or eval(). Use safer alternatives such as ast.literal_eval() for evaluating expressions.",
		reference:      "https://docs.python.org/3/library/functions.html#eval",
	},
	{
		languages:      []string{"python"},
		pattern:        regexp.MustCompile(`subprocess\.(?:call|run|Popen)\s*\([^)]*shell\s*=\s*True`),
		title:          "Use of shell=True in subprocess",
		severity:       SeverityHigh,
		description:    "Using shell=True with subprocess functions can lead to shell injection vulnerabilities if user input is included in the command.",
		recommendation: "Avoid using shell=True and pass command arguments as a list instead.",
		reference:      "https://docs.python.org/3/library/subprocess.html#security-considerations",
	},
	{
		languages:      []string{"python"},
		pattern:        regexp.MustCompile(`(?:execute|executemany|cursor\.execute)\s*\([f"'].*?(?:\{|%s)`),
		title:          "Potential SQL Injection",
		severity:       SeverityCritical,
		description:    "String formatting or interpolation in SQL queries can lead to SQL injection vulnerabilities.",
		recommendation: "Use parameterized queries with placeholders instead of string formatting or interpolation.",
		reference:      "https://bobby-tables.com/python",
	},

	// C#.
	{
		languages:      []string{"c#"},
		pattern:        regexp.MustCompile(`(?:ExecuteReader|ExecuteNonQuery|ExecuteScalar)\s*\(\s*["'].*?\+`),
		title:          "Potential SQL Injection",
		severity:       SeverityCritical,
		description:    "String concatenation in SQL queries can lead to SQL injection vulnerabilities.",
		recommendation: "Use parameterized queries with SqlParameters instead of string concatenation.",
		reference:      "https://docs.microsoft.com/en-us/dotnet/api/system.data.sqlclient.sqlcommand.parameters",
	},
	{
		languages:      []string{"c#"},
		pattern:        regexp.MustCompile(`BinaryFormatter\.Deserialize`),
		title:          "Insecure Deserialization",
		severity:       SeverityHigh,
		description:    "BinaryFormatter.Deserialize is insecure as it can lead to remote code execution vulnerabilities.",
		recommendation: "Use JSON or XML serialization with appropriate security settings instead.",
		reference:      "https://docs.microsoft.com/en-us/dotnet/standard/serialization/binaryformatter-security-guide",
	},
	{
		languages:      []string{"c#"},
		pattern:        regexp.MustCompile(`(?:Path\.Combine|File\.(?:Open|Read|Write))\s*\([^)]*\+`),
		title:          "Potential Path Traversal",
		severity:       SeverityMedium,
		description:    "String concatenation in file paths can lead to directory traversal vulnerabilities.",
		recommendation: "Validate and sanitize user input for file paths. Consider using Path.GetFileName() to extract just the filename.",
		reference:      "https://owasp.org/www-community/attacks/Path_Traversal",
	},

	// PHP.
	{
		languages:      []string{"php"},
		pattern:        regexp.MustCompile(`mysqli_query\s*\(\s*\$[^,]+,\s*["'][^"']*\$`),
		title:          "Potential SQL Injection",
		severity:       SeverityCritical,
		description:    "Direct inclusion of variables in SQL queries can lead to SQL injection vulnerabilities.",
		recommendation: "Use prepared statements with mysqli_prepare() or PDO::prepare() instead.",
		reference:      "https://www.php.net/manual/en/mysqli.prepare.php",
	},
	{
		languages:      []string{"php"},
		pattern:        regexp.MustCompile(`echo\s+\$_(?:GET|POST|REQUEST|COOKIE)\[`),
		title:          "Potential XSS Vulnerability",
		severity:       SeverityHigh,
		description:    "Outputting user input directly can lead to Cross-Site Scripting (XSS) vulnerabilities.",
		recommendation: "Use htmlspecialchars() or a template engine with proper escaping to output user input.",
		reference:      "https://www.php.net/manual/en/function.htmlspecialchars.php",
	},
	{
		languages:      []string{"php"},
		pattern:        regexp.MustCompile(`(?:include|require)(?:_once)?\s*\(\s*\$`),
		title:          "Potential File Inclusion Vulnerability",
		severity:       SeverityCritical,
		description:    "Dynamic file inclusion can lead to Remote File Inclusion (RFI) or Local File Inclusion (LFI) vulnerabilities.",
		recommendation: "Use a whitelist of allowed files and validate user input before including files.",
		reference:      "https://owasp.org/www-project-web-security-testing-guide/latest/4-Web_Application_Security_Testing/07-Input_Validation_Testing/11.1-Testing_for_Local_File_Inclusion",
	},

	// Java.
	{
		languages:      []string{"java"},
		pattern:        regexp.MustCompile(`(?:executeQuery|executeUpdate|execute)\s*\(["'][^"']*\+`),
		title:          "Potential SQL Injection",
		severity:       SeverityCritical,
		description:    "String concatenation in SQL queries can lead to SQL injection vulnerabilities.",
		recommendation: "Use PreparedStatement with parameterized queries instead of string concatenation.",
		reference:      "https://docs.oracle.com/javase/tutorial/jdbc/basics/prepared.html",
	},
	{
		languages:      []string{"java"},
		pattern:        regexp.MustCompile(`(?:ObjectInputStream|XMLDecoder).*?\.read`),
		title:          "Insecure Deserialization",
		severity:       SeverityHigh,
		description:    "Java deserialization can lead to remote code execution vulnerabilities if not properly secured.",
		recommendation: "Validate the source of serialized data and consider using safer serialization formats like JSON.",
		reference:      "https://cheatsheetseries.owasp.org/cheatsheets/Deserialization_Cheat_Sheet.html",
	},
	{
		languages:      []string{"java"},
		pattern:        regexp.MustCompile(`Runtime\.getRuntime\(\)\.exec\s*\([^)]*\+`),
		title:          "Potential Command Injection",
		severity:       SeverityCritical,
		description:    "Including user input in exec() calls can lead to command injection vulnerabilities.",
		recommendation: "Avoid using runtime exec with user input. If necessary, validate and sanitize the input carefully.",
		reference:      "https://cheatsheetseries.owasp.org/cheatsheets/OS_Command_Injection_Defense_Cheat_Sheet.html",
	},

	// SQL.
	{
		languages:      []string{"sql"},
		pattern:        regexp.MustCompile(`(?i)SELECT\s+\*\s+FROM`),
		title:          "Use of SELECT *",
		severity:       SeverityLow,
		description:    "Using SELECT * unnecessarily exposes all columns in a table and can lead to increased network traffic and application security risks.",
		recommendation: "Specify only the columns you need instead of using *.",
		reference:      "https://docs.microsoft.com/en-us/sql/t-sql/queries/select-transact-sql",
	},
	{
		languages:      []string{"sql"},
		pattern:        regexp.MustCompile(`(?i)GRANT\s+ALL`),
		title:          "Overly Permissive Grants",
		severity:       SeverityHigh,
		description:    "GRANT ALL provides excessive privileges, violating the principle of least privilege.",
		recommendation: "Grant only the specific privileges required for each user or role.",
		reference:      "https://cheatsheetseries.owasp.org/cheatsheets/Database_Security_Cheat_Sheet.html",
	},
}

func (r securityRule) appliesTo(language string) bool {
	if len(r.languages) == 0 {
		return true
	}
	for _, l := range r.languages {
		if l == language {
			return true
		}
	}
	return false
}

// AnalyzeSecurity runs the full rule catalog over snippet content and
// returns one finding per pattern match, in rule order.
func AnalyzeSecurity(code, language string) []Finding {
	var findings []Finding

	lang := strings.ToLower(language)
	for _, rule := range securityRules {
		if !rule.appliesTo(lang) {
			continue
		}
		for _, loc := range rule.pattern.FindAllStringIndex(code, -1) {
			findings = append(findings, Finding{
				ID:             uuid.NewString(),
				Title:          rule.title,
				Description:    rule.description,
				Severity:       rule.severity,
				LineNumber:     lineNumberAt(code, loc[0]),
				Excerpt:        excerptAt(code, loc[0]),
				Recommendation: rule.recommendation,
				Reference:      rule.reference,
			})
		}
	}
	return findings
}

// lineNumberAt returns the 1-based line number of a byte offset, or -1 for
// an offset outside the content.
func lineNumberAt(code string, offset int) int {
	if code == "" || offset < 0 || offset >= len(code) {
		return -1
	}
	return strings.Count(code[:offset], "\n") + 1
}

// excerptAt returns the full line containing a byte offset, prefixed with
// its line number.
func excerptAt(code string, offset int) string {
	if code == "" || offset < 0 || offset >= len(code) {
		return ""
	}

	start := strings.LastIndexByte(code[:offset], '\n') + 1
	end := strings.IndexByte(code[offset:], '\n')
	if end < 0 {
		end = len(code)
	} else {
		end += offset
	}

	return fmt.Sprintf("Line %d: %s", lineNumberAt(code, offset), code[start:end])
}
