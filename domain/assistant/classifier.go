// Package assistant classifies user prompts and assembles the prompts sent
// to the completion model.
package assistant

import (
	"regexp"
	"strings"
)

// simpleGreetings are whole-message phrases that mark a prompt as general
// conversation even before keyword matching runs.
var simpleGreetings = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "good night",
	"how are you", "what's up", "whats up", "what up", "sup", "yo",
	"thanks", "thank you", "bye", "goodbye", "see you", "talk to you later",
	"who are you", "what are you", "what can you do", "tell me about yourself",
	"nice to meet you", "pleasure to meet you", "how do you do",
}

var codeKeywords = []string{
	"code", "function", "method", "class", "variable", "algorithm", "programming", "program",
	"debug", "error", "bug", "syntax", "compile", "execute", "run", "script", "coding",
	"library", "framework", "api", "database", "sql", "query", "loop", "condition", "if",
	"array", "list", "object", "string", "number", "integer", "boolean", "float", "double",
	"async", "await", "promise", "callback", "event", "dom", "html", "css", "frontend", "backend",
	"server", "client", "web", "app", "application", "software", "development", "dev",
	"optimize", "performance", "security", "vulnerability", "injection", "authentication",
	"authorization", "encrypt", "decrypt", "hash", "token", "session", "cookie", "json", "xml",
	"rest", "http", "https", "request", "response", "endpoint", "route", "controller",
	"model", "view", "component", "module", "package", "import", "export", "namespace",
	"inheritance", "polymorphism", "encapsulation", "abstraction", "interface", "abstract",
	"public", "private", "protected", "static", "const", "var", "let", "def",
	"struct", "enum", "exception", "try", "catch", "finally", "throw", "return",
	"recursion", "iteration", "data structure", "stack", "queue", "tree", "graph",
	"sorting", "searching", "big o", "complexity", "refactor", "clean code", "best practice",
}

var technologyTerms = []string{
	"javascript", "js", "typescript", "ts", "python", "py", "java", "c#", "csharp", "c++", "cpp",
	"c", "ruby", "go", "golang", "php", "swift", "rust", "kotlin", "dart", "scala",
	"shell", "bash", "powershell", "perl", "haskell", "lisp", "clojure", "elixir", "erlang",
	"sql", "mysql", "postgresql", "mongodb", "redis", "html", "css", "sass", "scss", "less",
	"react", "angular", "vue", "svelte", "nextjs", "nuxt", "gatsby", "express", "node", "nodejs",
	"django", "flask", "fastapi", "spring", "laravel", "rails", "asp.net", ".net", "dotnet",
	"jquery", "bootstrap", "tailwind", "webpack", "vite", "babel", "eslint", "prettier",
	"git", "github", "gitlab", "docker", "kubernetes", "aws", "azure", "gcp", "heroku",
	"npm", "yarn", "pip", "composer", "maven", "gradle", "cmake", "makefile",
}

var codePatterns = compilePatterns(
	`[{}();]`,
	`function\s*\(`,
	`def\s+\w+`,
	`class\s+\w+`,
	`public\s+\w+`,
	`private\s+\w+`,
	`if\s*\(`,
	`for\s*\(`,
	`while\s*\(`,
	`console\.log`,
	`print\s*\(`,
	`import\s+`,
	`from\s+\w+\s+import`,
	`#include`,
	`using\s+\w+`,
	`SELECT\s+.*\s+FROM`,
	`INSERT\s+INTO`,
	`UPDATE\s+.*\s+SET`,
	`<[^>]+>`,
	`[a-zA-Z_]\w*\s*=\s*[^=]`,
	`//.*|/\*.*\*/`,
	`#.*`,
	`<!--.*-->`,
	`\$\w+`,
	`@\w+`,
	`=>\s*`,
	`\w+\.\w+\(`,
	`\[\s*\d+\s*\]`,
	`{\s*\w+:`,
	`:\s*\w+\s*=`,
	`async\s+`,
	`await\s+`,
	`try\s*{`,
	`catch\s*\(`,
	`finally\s*{`,
	`throw\s+`,
	`return\s+`,
	`yield\s+`,
	`new\s+\w+`,
	`this\.`,
	`self\.`,
	`null|undefined|None|nil`,
	`true|false|True|False`,
	`&&|\|\||and|or|not`,
	`==|!=|<=|>=|===|!==`,
	`\+\+|--|\+=|-=|\*=|/=`,
)

var codeQuestionPatterns = compilePatterns(
	`how\s+to\s+.*\s+(implement|build|create|make|develop|write)`,
	`what\s+is\s+.*\s+(algorithm|pattern|framework|library)`,
	`explain\s+.*\s+(code|function|method|class)`,
	`why\s+.*\s+(error|bug|issue|problem|exception)`,
	`best\s+way\s+to\s+.*\s+(code|program|develop|implement)`,
	`difference\s+between\s+.*\s+(language|framework|library|method)`,
)

// knownLanguages are the canonical names reported by ExtractLanguages.
var knownLanguages = []string{
	"JavaScript", "Python", "Java", "C#", "C++", "TypeScript", "Ruby", "Go",
	"PHP", "Swift", "Rust", "Kotlin", "Dart", "Shell", "Bash", "PowerShell",
	"SQL", "HTML", "CSS", "R", "Matlab", "Scala", "Perl", "Haskell", "Lisp",
	"Clojure", "Elixir", "F#", "VBA", "COBOL", "Assembly", "Fortran", "Lua",
	"Objective-C", "Julia", "Groovy", "Scheme", "Prolog", "Erlang", "Angular",
	"React", "Vue", "Node.js", "Django", "Flask", "Spring", "ASP.NET", ".NET",
}

var (
	greetingPatterns     []*regexp.Regexp
	codeKeywordPatterns  []*regexp.Regexp
	technologyPatterns   []*regexp.Regexp
	knownLanguagePattern []*regexp.Regexp
)

func init() {
	for _, g := range simpleGreetings {
		greetingPatterns = append(greetingPatterns,
			regexp.MustCompile(`(?i)^`+regexp.QuoteMeta(g)+`\.?!?\??$`))
	}
	codeKeywordPatterns = wholeWordPatterns(codeKeywords)
	technologyPatterns = wholeWordPatterns(technologyTerms)
	knownLanguagePattern = wholeWordPatterns(knownLanguages)
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}

func wholeWordPatterns(terms []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		compiled = append(compiled, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return compiled
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsCodeRelated reports whether a prompt should go through snippet
// retrieval. Whole-message greetings short-circuit to false; anything
// containing programming keywords, technology names, code-shaped text, or
// a code question form is code-related.
func IsCodeRelated(prompt string) bool {
	trimmed := strings.TrimSpace(prompt)
	for _, p := range greetingPatterns {
		if p.MatchString(trimmed) {
			return false
		}
	}

	return anyMatch(codeKeywordPatterns, prompt) ||
		anyMatch(technologyPatterns, prompt) ||
		anyMatch(codePatterns, prompt) ||
		anyMatch(codeQuestionPatterns, prompt)
}

// ExtractLanguages returns the canonical names of every known language or
// framework mentioned in the prompt, in catalog order.
func ExtractLanguages(prompt string) []string {
	var detected []string
	for i, p := range knownLanguagePattern {
		if p.MatchString(prompt) {
			detected = append(detected, knownLanguages[i])
		}
	}
	return detected
}
