package assistant

// Intents marks which enrichment passes a code-related prompt asks for.
// Multiple intents can be active at once.
type Intents struct {
	Explanation  bool
	Comparison   bool
	Optimization bool
	Security     bool
	Conversion   bool
}

var explanationKeywords = wholeWordPatterns([]string{
	"explain", "how does", "what does", "understand", "describe", "break down",
	"clarify", "elaborate", "walk through", "help me understand", "meaning of",
	"what is", "how is", "tell me about", "explain how", "understanding",
})

var comparisonKeywords = wholeWordPatterns([]string{
	"compare", "versus", "vs", "difference", "differences", "better",
	"which one", "pros and cons", "advantages", "disadvantages", "contrast",
	"comparison", "similarities", "distinction", "prefer", "alternative",
})

var optimizationKeywords = wholeWordPatterns([]string{
	"optimize", "improve", "faster", "efficient", "performance", "speed up",
	"better way", "cleaner", "refactor", "clean up", "best practice", "more efficient",
	"optimization", "time complexity", "space complexity", "Big O", "O(n)", "memory usage",
})

var securityKeywords = wholeWordPatterns([]string{
	"security", "secure", "vulnerability", "exploit", "hack", "breach", "risk",
	"authentication", "authorization", "injection", "XSS", "CSRF", "SQL injection",
	"attack", "malicious", "protection", "safeguard", "encryption", "sanitize",
})

var conversionKeywords = wholeWordPatterns([]string{
	"convert", "translation", "translate", "port", "change from", "rewrite",
	"implement in", "migration", "equivalent", "counterpart",
	"same as", "similar to", "alternative to",
})

// DetectIntents analyzes a prompt already classified as code-related.
// Conversion additionally requires at least two recognized languages so
// that "convert this to uppercase" is not treated as a porting request.
func DetectIntents(prompt string) Intents {
	return Intents{
		Explanation:  anyMatch(explanationKeywords, prompt),
		Comparison:   anyMatch(comparisonKeywords, prompt),
		Optimization: anyMatch(optimizationKeywords, prompt),
		Security:     anyMatch(securityKeywords, prompt),
		Conversion:   anyMatch(conversionKeywords, prompt) && len(ExtractLanguages(prompt)) > 1,
	}
}
