package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceRepository hands out document numbers from per-company counter
// rows. NextSequence must run inside the caller's transaction so that number
// assignment and document insert commit or roll back together; the upsert
// increment is atomic, which removes the read-then-write race of scanning for
// the previous maximum.
type SequenceRepository interface {
	NextSequence(ctx context.Context, tx pgx.Tx, companyID, sequenceKey string) (int64, error)
}
