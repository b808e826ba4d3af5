package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradegate/trading_erp/internal/apperrors"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for document sequences.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextSequence atomically increments and returns the counter for the key.
// The upsert takes a row lock, so two transactions asking for the same key
// serialize and can never observe the same value. Running inside the caller's
// transaction ties the number to the document insert: a rollback leaves a gap
// in the series, never a duplicate.
func (r *PgxSequenceRepository) NextSequence(ctx context.Context, tx pgx.Tx, companyID, sequenceKey string) (int64, error) {
	query := `
		INSERT INTO document_sequences (company_id, sequence_key, current_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, sequence_key)
		DO UPDATE SET current_value = document_sequences.current_value + 1
		RETURNING current_value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, companyID, sequenceKey).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance document sequence "+sequenceKey, err)
	}
	return value, nil
}
