package snippet

import (
	"reflect"
	"testing"
)

func TestParseTags_RoundTrip(t *testing.T) {
	original := []string{"go", "algorithms", "binary-search"}

	parsed := ParseTags(JoinTags(original))

	if !reflect.DeepEqual(parsed, original) {
		t.Errorf("round trip changed tags: %v != %v", parsed, original)
	}
}

func TestParseTags_Empty(t *testing.T) {
	if got := ParseTags(""); len(got) != 0 {
		t.Errorf("ParseTags(\"\") = %v, want empty", got)
	}
}

func TestParseTags_TrimsAndDrops(t *testing.T) {
	got := ParseTags(" go , , sorting ,")

	want := []string{"go", "sorting"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTags = %v, want %v", got, want)
	}
}

func TestNormalizeTags_CaseInsensitiveDedupe(t *testing.T) {
	got := NormalizeTags([]string{"React", "react", "REACT", "hooks"})

	want := []string{"React", "hooks"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags = %v, want %v", got, want)
	}
}
