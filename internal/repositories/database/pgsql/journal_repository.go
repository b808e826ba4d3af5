package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
	"github.com/tradegate/trading_erp/internal/utils/numbering"
	"github.com/tradegate/trading_erp/internal/utils/pagination"
)

const journalEntryColumns = `
	journal_entry_id, company_id, entry_number, entry_date, description,
	reference_type, reference_id, status, posted_at, posted_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalEntryRepository struct {
	BaseRepository
	accountRepo  portsrepo.AccountHeadRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entry data.
func newPgxJournalEntryRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountHeadRepositoryFacade, sequenceRepo portsrepo.SequenceRepository) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		sequenceRepo:   sequenceRepo,
	}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

func scanJournalEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.JournalEntryID, &e.CompanyID, &e.EntryNumber, &e.EntryDate, &e.Description,
		&e.ReferenceType, &e.ReferenceID, &e.Status, &e.PostedAt, &e.PostedBy,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SaveJournalEntry persists a DRAFT entry with its lines. The entry number is
// pulled from the per-day document sequence inside the same transaction, so
// the assigned number commits or rolls back together with the entry.
func (r *PgxJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	saved, err := r.insertEntryInTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// insertEntryInTx assigns the entry number and inserts the entry with its lines.
func (r *PgxJournalEntryRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	seq, err := r.sequenceRepo.NextSequence(ctx, tx, entry.CompanyID,
		numbering.SequenceKey(numbering.PrefixJournalEntry, entry.EntryDate))
	if err != nil {
		return nil, err
	}
	entry.EntryNumber = numbering.Format(numbering.PrefixJournalEntry, entry.EntryDate, seq)

	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.JournalEntryID,
		entry.CompanyID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.Description,
		entry.ReferenceType,
		entry.ReferenceID,
		entry.Status,
		entry.PostedAt,
		entry.PostedBy,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+entry.JournalEntryID, err)
	}

	if err := r.insertLinesInTx(ctx, tx, entry.JournalEntryID, entry.Lines); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *PgxJournalEntryRepository) insertLinesInTx(ctx context.Context, tx pgx.Tx, journalEntryID string, lines []domain.JournalEntryLine) error {
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, journal_entry_id, account_head_id, debit_amount, credit_amount, description)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			journalEntryID,
			line.AccountHeadID,
			line.DebitAmount,
			line.CreditAmount,
			line.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal entry "+journalEntryID, err)
	}
	return nil
}

// UpdateJournalEntry replaces the header fields and lines of an entry. The
// header update is guarded in SQL on DRAFT status: an entry posted by a
// concurrent request between the service's status read and this write matches
// zero rows and the amendment fails instead of rewriting posted history.
func (r *PgxJournalEntryRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE journal_entry_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, entryQuery,
		entry.JournalEntryID,
		entry.EntryDate,
		entry.Description,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		domain.Draft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+entry.JournalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not in DRAFT status", apperrors.ErrBadRequest, entry.JournalEntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE journal_entry_id = $1;`, entry.JournalEntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for journal entry "+entry.JournalEntryID, err)
	}
	if err := r.insertLinesInTx(ctx, tx, entry.JournalEntryID, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// PostJournalEntry flips DRAFT to POSTED and applies balance deltas in one
// transaction. The status flip is guarded in SQL: a concurrent post of the
// same entry finds zero affected rows and fails instead of double-applying.
func (r *PgxJournalEntryRepository) PostJournalEntry(ctx context.Context, journalEntryID string, balanceChanges map[string]decimal.Decimal, postedBy string, postedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	if _, err := r.accountRepo.FindAccountHeadsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}

	statusQuery := `
		UPDATE journal_entries
		SET status = $2, posted_at = $3, posted_by = $4,
		    last_updated_at = $3, last_updated_by = $4
		WHERE journal_entry_id = $1 AND status = $5;
	`
	tag, err := tx.Exec(ctx, statusQuery, journalEntryID, domain.Posted, postedAt, postedBy, domain.Draft)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal entry "+journalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not in DRAFT status", apperrors.ErrBadRequest, journalEntryID)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, postedBy, postedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SavePostedJournalEntry persists an entry directly in POSTED status together
// with its balance deltas (reversal entries skip the draft stage).
func (r *PgxJournalEntryRepository) SavePostedJournalEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	if _, err := r.accountRepo.FindAccountHeadsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return nil, err
	}

	saved, err := r.insertEntryInTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, entry.CreatedBy, entry.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteDraftJournalEntry removes a DRAFT entry and its lines.
func (r *PgxJournalEntryRepository) DeleteDraftJournalEntry(ctx context.Context, journalEntryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE journal_entry_id = $1;`, journalEntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for journal entry "+journalEntryID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE journal_entry_id = $1 AND status = $2;`, journalEntryID, domain.Draft)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+journalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("draft journal entry " + journalEntryID + " not found")
	}

	return r.Commit(ctx, tx)
}

// FindJournalEntryByID retrieves an entry together with its lines.
func (r *PgxJournalEntryRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`
	entry, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry " + journalEntryID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query journal entry "+journalEntryID, err)
	}

	lines, err := r.findLines(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func (r *PgxJournalEntryRepository) findLines(ctx context.Context, journalEntryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, journal_entry_id, account_head_id, debit_amount, credit_amount, description
		FROM journal_entry_lines
		WHERE journal_entry_id = $1
		ORDER BY line_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+journalEntryID, err)
	}
	defer rows.Close()

	lines := make([]domain.JournalEntryLine, 0)
	for rows.Next() {
		var l domain.JournalEntryLine
		if err := rows.Scan(&l.LineID, &l.JournalEntryID, &l.AccountHeadID, &l.DebitAmount, &l.CreditAmount, &l.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal entry lines", err)
	}
	return lines, nil
}

// ListJournalEntries retrieves a page of entries, newest first, using a
// (entry_date, created_at) cursor.
func (r *PgxJournalEntryRepository) ListJournalEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := []any{companyID, limit + 1}
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE company_id = $1`

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (entry_date, created_at) < ($3, $4)`
		args = append(args, entryDate, createdAt)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate journal entry rows", err)
	}

	var newNextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}

	for i := range entries {
		lines, err := r.findLines(ctx, entries[i].JournalEntryID)
		if err != nil {
			return nil, nil, err
		}
		entries[i].Lines = lines
	}

	return entries, newNextToken, nil
}
