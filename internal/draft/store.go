// Package draft persists in-progress card edits so an interrupted session can
// be restored. Persistence is best-effort: callers treat every failure as a
// missing draft and never surface storage problems to the operator.
package draft

import (
	"context"

	"cardcomposer/internal/models"
)

// Store is the draft slot port. One slot per session, last write wins.
type Store interface {
	// Load reads the slot. The second return is false when the slot is
	// missing, unparsable or the backend is unreachable.
	Load(ctx context.Context, sessionID string) (*models.Draft, bool)
	// Save overwrites the slot with the full current snapshot.
	Save(ctx context.Context, sessionID string, fields map[string]any, keywords []string) error
	// Clear deletes the slot. Clearing an absent slot is a no-op.
	Clear(ctx context.Context, sessionID string) error
}

const keyPrefix = "draft"

// Key builds the storage key for a session's draft slot.
func Key(sessionID string) string {
	return keyPrefix + ":" + sessionID
}
