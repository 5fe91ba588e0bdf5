package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codevault/codevault/domain/analysis"
	"github.com/codevault/codevault/internal/database"
)

func makeScan(snippetID int64, findings ...analysis.Finding) analysis.Scan {
	return analysis.NewScan(snippetID, findings)
}

func TestScanStore_AddRoundTripsFindings(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewScanStore(db)

	sn := createSnippet(t, NewSnippetStore(db), "Login", "Python", "eval(data)", nil)

	finding := analysis.Finding{
		ID:             "f-1",
		Title:          "Use of eval()",
		Description:    "Using eval() with user input can lead to code injection vulnerabilities.",
		Severity:       analysis.SeverityCritical,
		LineNumber:     1,
		Excerpt:        "Line 1: eval(data)",
		Recommendation: "Avoid using eval() with user-provided data.",
		Reference:      "https://owasp.org/www-community/attacks/Code_Injection",
	}

	created, err := store.Add(ctx, makeScan(sn.ID(), finding))
	require.NoError(t, err)
	assert.NotZero(t, created.ID())

	loaded, err := store.Latest(ctx, sn.ID())
	require.NoError(t, err)
	assert.Equal(t, analysis.ScannerName, loaded.Scanner())
	assert.Equal(t, 1, loaded.CriticalCount())
	assert.Equal(t, 75, loaded.Score())

	require.Len(t, loaded.Findings(), 1)
	assert.Equal(t, finding, loaded.Findings()[0])
}

func TestScanStore_LatestReturnsNewest(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewScanStore(db)

	sn := createSnippet(t, NewSnippetStore(db), "Login", "Python", "eval(data)", nil)

	older := analysis.ReconstructScan(
		0, sn.ID(),
		time.Now().Add(-time.Hour),
		analysis.ScannerName,
		75, 0, 1, 0, 0,
		nil,
	)
	_, err := store.Add(ctx, older)
	require.NoError(t, err)

	_, err = store.Add(ctx, makeScan(sn.ID()))
	require.NoError(t, err)

	latest, err := store.Latest(ctx, sn.ID())
	require.NoError(t, err)
	assert.Equal(t, 100, latest.Score())
	assert.Empty(t, latest.Findings())
}

func TestScanStore_LatestMissing(t *testing.T) {
	store := NewScanStore(newTestDB(t))

	_, err := store.Latest(context.Background(), 999)
	require.ErrorIs(t, err, database.ErrNotFound)
}
