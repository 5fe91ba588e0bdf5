package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codevault/codevault/domain/snippet"
)

// CompareFailure is returned instead of a report when comparison panics,
// typically on pathological snippet content.
const CompareFailure = "Error performing code comparison."

var (
	jsFunctionPattern     = regexp.MustCompile(`function\s+\w+|const\s+\w+\s*=\s*\(|let\s+\w+\s*=\s*\(|var\s+\w+\s*=\s*\(|\w+\s*=\s*function|\w+\s*\([^)]*\)\s*=>|\bclass\s+\w+`)
	pyFunctionPattern     = regexp.MustCompile(`def\s+\w+`)
	classPattern          = regexp.MustCompile(`class\s+\w+`)
	csharpMethodPattern   = regexp.MustCompile(`(?:public|private|protected|internal|static)?\s+\w+\s+\w+\s*\(`)
	lineCommentPattern    = regexp.MustCompile(`(?m)//.*?$`)
	hashCommentPattern    = regexp.MustCompile(`(?m)#.*?$`)
	blockCommentPattern   = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	whitespaceRunPattern  = regexp.MustCompile(`\s+`)
	doubleQuotedPattern   = regexp.MustCompile(`".*?"`)
	singleQuotedPattern   = regexp.MustCompile(`'.*?'`)
)

// Compare renders a markdown report contrasting two snippets: metadata,
// tags, language-specific structure, and a token-level similarity score.
func Compare(a, b snippet.Snippet) (report string) {
	defer func() {
		if recover() != nil {
			report = CompareFailure
		}
	}()

	var sb strings.Builder

	sb.WriteString("# Code Comparison\n\n")
	sb.WriteString("## Metadata Comparison\n\n")
	fmt.Fprintf(&sb, "| Feature | %s | %s |\n", formatTitle(a.Title()), formatTitle(b.Title()))
	sb.WriteString("| --- | --- | --- |\n")
	fmt.Fprintf(&sb, "| Language | %s | %s |\n", a.Language(), b.Language())
	fmt.Fprintf(&sb, "| Created | %s | %s |\n", a.CreatedAt().Format("2006-01-02"), b.CreatedAt().Format("2006-01-02"))
	fmt.Fprintf(&sb, "| Line Count | %d | %d |\n\n", countLines(a.Content()), countLines(b.Content()))

	if len(a.Tags()) > 0 || len(b.Tags()) > 0 {
		compareTags(&sb, a, b)
	}

	if a.Language() == b.Language() {
		sb.WriteString("## Language-Specific Analysis\n\n")
		switch strings.ToLower(a.Language()) {
		case "javascript", "typescript":
			sb.WriteString(compareJavaScript(a.Content(), b.Content()))
		case "python":
			sb.WriteString(comparePython(a.Content(), b.Content()))
		case "c#":
			sb.WriteString(compareCSharp(a.Content(), b.Content()))
		default:
			sb.WriteString(compareGeneric(a.Content(), b.Content()))
		}
	} else {
		sb.WriteString("## Cross-Language Comparison\n\n")
		fmt.Fprintf(&sb, "* These snippets use different languages (%s vs %s).\n", a.Language(), b.Language())
		sb.WriteString("* The approaches may differ due to language-specific features and paradigms.\n")
		sb.WriteString(compareGeneric(a.Content(), b.Content()))
	}

	score := SimilarityScore(a.Content(), b.Content())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "## Overall Similarity Score: %.0f%%\n", score*100)
	switch {
	case score > 0.8:
		sb.WriteString("These snippets are very similar and likely serve the same purpose with minor variations.\n")
	case score > 0.5:
		sb.WriteString("These snippets have moderate similarity and may represent different approaches to the same problem.\n")
	default:
		sb.WriteString("These snippets have low similarity and likely represent different approaches or solve different problems.\n")
	}

	return sb.String()
}

func compareTags(sb *strings.Builder, a, b snippet.Snippet) {
	tagsA, tagsB := a.Tags(), b.Tags()

	sb.WriteString("## Tag Comparison\n\n")
	fmt.Fprintf(sb, "* Snippet 1 Tags: %s\n", tagListOrNone(tagsA))
	fmt.Fprintf(sb, "* Snippet 2 Tags: %s\n", tagListOrNone(tagsB))

	common := intersect(tagsA, tagsB)
	onlyA := except(tagsA, tagsB)
	onlyB := except(tagsB, tagsA)

	if len(common) > 0 {
		fmt.Fprintf(sb, "* Common Tags: %s\n", strings.Join(common, ", "))
	}
	if len(onlyA) > 0 {
		fmt.Fprintf(sb, "* Tags unique to %s: %s\n", formatTitle(a.Title()), strings.Join(onlyA, ", "))
	}
	if len(onlyB) > 0 {
		fmt.Fprintf(sb, "* Tags unique to %s: %s\n", formatTitle(b.Title()), strings.Join(onlyB, ", "))
	}
	sb.WriteString("\n")
}

func intersect(a, b []string) []string {
	var out []string
	for _, v := range a {
		for _, w := range b {
			if v == w {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

func except(a, b []string) []string {
	var out []string
	for _, v := range a {
		found := false
		for _, w := range b {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			out = append(out, v)
		}
	}
	return out
}

func tagListOrNone(tags []string) string {
	if len(tags) == 0 {
		return "None"
	}
	return strings.Join(tags, ", ")
}

func compareJavaScript(code1, code2 string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "* Function/Class count: %d vs %d\n",
		len(jsFunctionPattern.FindAllString(code1, -1)),
		len(jsFunctionPattern.FindAllString(code2, -1)))

	es6 := func(code string) bool {
		return strings.Contains(code, "=>") || strings.Contains(code, "const ") || strings.Contains(code, "let ")
	}
	fmt.Fprintf(&sb, "* ES6 Features: %s vs %s\n", yesNo(es6(code1)), yesNo(es6(code2)))

	fw1, fw2 := detectJSFramework(code1), detectJSFramework(code2)
	if fw1 != "" || fw2 != "" {
		fmt.Fprintf(&sb, "* Framework: %s vs %s\n", frameworkOrNone(fw1), frameworkOrNone(fw2))
	}
	return sb.String()
}

func comparePython(code1, code2 string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "* Function count: %d vs %d\n",
		len(pyFunctionPattern.FindAllString(code1, -1)),
		len(pyFunctionPattern.FindAllString(code2, -1)))
	fmt.Fprintf(&sb, "* Class count: %d vs %d\n",
		len(classPattern.FindAllString(code1, -1)),
		len(classPattern.FindAllString(code2, -1)))

	py3 := func(code string) bool {
		return strings.Contains(code, "print(") || strings.Contains(code, "__future__") || strings.Contains(code, `f"`)
	}
	fmt.Fprintf(&sb, "* Python 3 Specific Features: %s vs %s\n", yesNo(py3(code1)), yesNo(py3(code2)))

	fw1, fw2 := detectPythonFramework(code1), detectPythonFramework(code2)
	if fw1 != "" || fw2 != "" {
		fmt.Fprintf(&sb, "* Framework: %s vs %s\n", frameworkOrNone(fw1), frameworkOrNone(fw2))
	}
	return sb.String()
}

func compareCSharp(code1, code2 string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "* Class count: %d vs %d\n",
		len(classPattern.FindAllString(code1, -1)),
		len(classPattern.FindAllString(code2, -1)))
	fmt.Fprintf(&sb, "* Method count: %d vs %d\n",
		len(csharpMethodPattern.FindAllString(code1, -1)),
		len(csharpMethodPattern.FindAllString(code2, -1)))

	linq := func(code string) bool {
		return strings.Contains(code, "using System.Linq") || strings.Contains(code, ".Select(") || strings.Contains(code, ".Where(")
	}
	fmt.Fprintf(&sb, "* LINQ Usage: %s vs %s\n", yesNo(linq(code1)), yesNo(linq(code2)))

	async := func(code string) bool {
		return strings.Contains(code, "async ") || strings.Contains(code, "await ")
	}
	fmt.Fprintf(&sb, "* Async/Await: %s vs %s\n", yesNo(async(code1)), yesNo(async(code2)))

	return sb.String()
}

func compareGeneric(code1, code2 string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "* Line Count: %d vs %d\n", countLines(code1), countLines(code2))
	fmt.Fprintf(&sb, "* Comment Count: %d vs %d\n", countComments(code1), countComments(code2))
	fmt.Fprintf(&sb, "* Max Nesting Depth: %d vs %d\n", bracketNestingDepth(code1), bracketNestingDepth(code2))
	return sb.String()
}

// SimilarityScore computes the Jaccard similarity of the token sets of two
// normalized snippets. Identical content scores 1.0, disjoint content 0.0.
func SimilarityScore(code1, code2 string) float64 {
	tokens1 := strings.Fields(normalizeCode(code1))
	tokens2 := strings.Fields(normalizeCode(code2))

	set1 := make(map[string]struct{}, len(tokens1))
	for _, t := range tokens1 {
		set1[t] = struct{}{}
	}
	set2 := make(map[string]struct{}, len(tokens2))
	for _, t := range tokens2 {
		set2[t] = struct{}{}
	}

	common := 0
	for t := range set1 {
		if _, ok := set2[t]; ok {
			common++
		}
	}

	total := len(tokens1) + len(tokens2) - common
	if total == 0 {
		return 1.0
	}
	return float64(common) / float64(total)
}

// normalizeCode strips comments, string literal contents, and whitespace
// runs so the similarity score reflects structure rather than formatting.
func normalizeCode(code string) string {
	if code == "" {
		return ""
	}
	code = lineCommentPattern.ReplaceAllString(code, "")
	code = blockCommentPattern.ReplaceAllString(code, "")
	code = hashCommentPattern.ReplaceAllString(code, "")
	code = whitespaceRunPattern.ReplaceAllString(code, " ")
	code = doubleQuotedPattern.ReplaceAllString(code, `""`)
	code = singleQuotedPattern.ReplaceAllString(code, "''")
	return strings.TrimSpace(code)
}

func countComments(code string) int {
	if code == "" {
		return 0
	}
	count := len(lineCommentPattern.FindAllString(code, -1))
	count += len(hashCommentPattern.FindAllString(code, -1))
	for _, block := range blockCommentPattern.FindAllString(code, -1) {
		count += strings.Count(block, "\n") + 1
	}
	return count
}

// bracketNestingDepth tracks all bracket kinds together, unlike
// NestingDepth which follows each language's block conventions.
func bracketNestingDepth(code string) int {
	maxDepth, depth := 0, 0
	for _, c := range code {
		switch c {
		case '{', '(', '[':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case '}', ')', ']':
			if depth > 0 {
				depth--
			}
		}
	}
	return maxDepth
}

func countLines(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, "\n") + 1
}

func formatTitle(title string) string {
	if len(title) > 20 {
		return title[:17] + "..."
	}
	return title
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func frameworkOrNone(fw string) string {
	if fw == "" {
		return "None"
	}
	return fw
}

func detectJSFramework(code string) string {
	switch {
	case code == "":
		return ""
	case strings.Contains(code, "React") || strings.Contains(code, "jsx") ||
		strings.Contains(code, "ReactDOM") || strings.Contains(code, "Component"):
		return "React"
	case strings.Contains(code, "Angular") || strings.Contains(code, "@Component") ||
		strings.Contains(code, "ngOnInit"):
		return "Angular"
	case strings.Contains(code, "Vue") || strings.Contains(code, "createApp"):
		return "Vue"
	case strings.Contains(code, "express") || strings.Contains(code, "app.get(") ||
		strings.Contains(code, "app.use("):
		return "Express.js"
	}
	return ""
}

func detectPythonFramework(code string) string {
	switch {
	case code == "":
		return ""
	case strings.Contains(code, "django") || strings.Contains(code, "models.Model") ||
		strings.Contains(code, "urls.py"):
		return "Django"
	case strings.Contains(code, "flask") || strings.Contains(code, "Flask") ||
		strings.Contains(code, "app.route"):
		return "Flask"
	case strings.Contains(code, "tensorflow") || strings.Contains(code, "tf.") ||
		strings.Contains(code, "keras"):
		return "TensorFlow"
	case strings.Contains(code, "pandas") || strings.Contains(code, "pd.") ||
		strings.Contains(code, "DataFrame"):
		return "Pandas"
	}
	return ""
}
