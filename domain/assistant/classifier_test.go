package assistant

import "testing"

func TestIsCodeRelated_Greetings(t *testing.T) {
	greetings := []string{
		"hello",
		"Hello!",
		"hi",
		"  good morning  ",
		"How are you?",
		"thanks.",
		"what can you do",
	}
	for _, g := range greetings {
		if IsCodeRelated(g) {
			t.Errorf("IsCodeRelated(%q) = true, want false", g)
		}
	}
}

func TestIsCodeRelated_Keywords(t *testing.T) {
	prompts := []string{
		"how do I fix this bug",
		"what is a binary tree",
		"my python program crashes",
		"help me with sql queries",
		"the function returns nothing",
	}
	for _, p := range prompts {
		if !IsCodeRelated(p) {
			t.Errorf("IsCodeRelated(%q) = false, want true", p)
		}
	}
}

func TestIsCodeRelated_CodeShapedText(t *testing.T) {
	prompts := []string{
		"console.log(user)",
		"x = compute(y);",
		"SELECT name FROM users",
		"def do_it(): pass",
	}
	for _, p := range prompts {
		if !IsCodeRelated(p) {
			t.Errorf("IsCodeRelated(%q) = false, want true", p)
		}
	}
}

func TestIsCodeRelated_QuestionForms(t *testing.T) {
	if !IsCodeRelated("how to properly implement caching") {
		t.Error("expected question form to be code-related")
	}
}

func TestIsCodeRelated_GreetingWithTechnicalTail(t *testing.T) {
	// Only whole-message greetings short-circuit.
	if !IsCodeRelated("hello, can you explain this function") {
		t.Error("greeting followed by technical content should be code-related")
	}
}

func TestExtractLanguages(t *testing.T) {
	got := ExtractLanguages("Should I use Python or Ruby for this, maybe with Django?")

	want := []string{"Python", "Ruby", "Django"}
	if len(got) != len(want) {
		t.Fatalf("ExtractLanguages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ExtractLanguages = %v, want %v", got, want)
		}
	}
}

func TestExtractLanguages_CaseInsensitive(t *testing.T) {
	got := ExtractLanguages("compare JAVA and python")
	if len(got) != 2 || got[0] != "Python" || got[1] != "Java" {
		t.Fatalf("ExtractLanguages = %v, want [Python Java]", got)
	}
}

func TestExtractLanguages_None(t *testing.T) {
	if got := ExtractLanguages("what a lovely day"); len(got) != 0 {
		t.Fatalf("ExtractLanguages = %v, want empty", got)
	}
}
