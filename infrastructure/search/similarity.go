// Package search implements vector storage and cosine-similarity ranking
// over snippet embeddings.
package search

import (
	"math"
	"sort"
)

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 (opposite) and 1 (identical), or 0 when
// either vector has zero magnitude or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Match holds a snippet ID and its similarity to the query.
type Match struct {
	snippetID  int64
	similarity float64
}

// NewMatch creates a new Match.
func NewMatch(snippetID int64, similarity float64) Match {
	return Match{snippetID: snippetID, similarity: similarity}
}

// SnippetID returns the snippet identifier.
func (m Match) SnippetID() int64 { return m.snippetID }

// Similarity returns the similarity score.
func (m Match) Similarity() float64 { return m.similarity }

// StoredVector holds an embedding vector with its snippet ID.
type StoredVector struct {
	snippetID int64
	embedding []float64
}

// NewStoredVector creates a new StoredVector.
func NewStoredVector(snippetID int64, embedding []float64) StoredVector {
	vec := make([]float64, len(embedding))
	copy(vec, embedding)
	return StoredVector{snippetID: snippetID, embedding: vec}
}

// SnippetID returns the snippet identifier.
func (v StoredVector) SnippetID() int64 { return v.snippetID }

// Embedding returns a copy of the embedding vector.
func (v StoredVector) Embedding() []float64 {
	out := make([]float64, len(v.embedding))
	copy(out, v.embedding)
	return out
}

// TopK ranks the stored vectors against the query and returns the k best
// matches, highest similarity first. Vectors whose dimension differs from
// the query are ignored.
func TopK(query []float64, vectors []StoredVector, k int) []Match {
	if len(vectors) == 0 || k <= 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(vectors))
	for _, v := range vectors {
		if len(v.embedding) != len(query) {
			continue
		}
		matches = append(matches, NewMatch(v.snippetID, CosineSimilarity(query, v.embedding)))
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k]
}
