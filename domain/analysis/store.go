package analysis

import "context"

// ScanStore defines operations for security scan persistence.
type ScanStore interface {
	// Add appends a scan record and returns it with its assigned ID.
	Add(ctx context.Context, s Scan) (Scan, error)

	// Latest returns the most recent scan for a snippet, or
	// database.ErrNotFound when none exists.
	Latest(ctx context.Context, snippetID int64) (Scan, error)
}
