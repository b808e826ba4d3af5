package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/dto"
	"github.com/tradegate/trading_erp/internal/utils/accounting"
)

type journalEntryService struct {
	BaseService
	journalRepo portsrepo.JournalEntryRepositoryFacade
	accountRepo portsrepo.AccountHeadRepositoryFacade
	periodGuard portssvc.PeriodGuardSvc
}

// JournalServiceOption configures the journal entry service.
type JournalServiceOption func(*journalEntryService)

// WithJournalAuthorizer wires the company authorizer.
func WithJournalAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) JournalServiceOption {
	return func(s *journalEntryService) {
		s.Authorizer = authorizer
	}
}

// NewJournalEntryService creates a new journal entry service.
func NewJournalEntryService(
	journalRepo portsrepo.JournalEntryRepositoryFacade,
	accountRepo portsrepo.AccountHeadRepositoryFacade,
	periodGuard portssvc.PeriodGuardSvc,
	opts ...JournalServiceOption,
) portssvc.JournalEntrySvc {
	svc := &journalEntryService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodGuard: periodGuard,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.JournalEntrySvc = (*journalEntryService)(nil)

func (s *journalEntryService) CreateJournalEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.Authorize(ctx, userID, companyID, domain.CapCreateJournals); err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	lines := toDomainLines(entryID, req.Lines)
	if err := accounting.ValidateEntryLines(lines); err != nil {
		return nil, err
	}
	if err := s.periodGuard.ValidatePeriodNotClosed(ctx, companyID, req.Date); err != nil {
		return nil, err
	}
	if err := s.validateLineAccounts(ctx, companyID, lines); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      companyID,
		EntryDate:      req.Date,
		Description:    req.Description,
		ReferenceType:  req.ReferenceType,
		ReferenceID:    req.ReferenceID,
		Status:         domain.Draft,
		Lines:          lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	saved, err := s.journalRepo.SaveJournalEntry(ctx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("journal_entry_id", saved.JournalEntryID),
		slog.String("entry_number", saved.EntryNumber),
		slog.Int("line_count", len(saved.Lines)))
	return saved, nil
}

func (s *journalEntryService) GetJournalEntryByID(ctx context.Context, companyID, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}
	return s.fetchCompanyEntry(ctx, companyID, journalEntryID)
}

func (s *journalEntryService) ListJournalEntries(ctx context.Context, companyID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListJournalEntries(ctx, companyID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	res := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		res.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return res, nil
}

func (s *journalEntryService) UpdateJournalEntry(ctx context.Context, companyID, journalEntryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapCreateJournals); err != nil {
		return nil, err
	}

	entry, err := s.fetchCompanyEntry(ctx, companyID, journalEntryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: only DRAFT entries can be amended", apperrors.ErrBadRequest)
	}

	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Lines != nil {
		entry.Lines = toDomainLines(entry.JournalEntryID, req.Lines)
	}

	if err := accounting.ValidateEntryLines(entry.Lines); err != nil {
		return nil, err
	}
	if err := s.periodGuard.ValidatePeriodNotClosed(ctx, companyID, entry.EntryDate); err != nil {
		return nil, err
	}
	if err := s.validateLineAccounts(ctx, companyID, entry.Lines); err != nil {
		return nil, err
	}

	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournalEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("journal_entry_id", journalEntryID))
		if errors.Is(err, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("journal_entry_id", journalEntryID))
	return entry, nil
}

func (s *journalEntryService) PostJournalEntry(ctx context.Context, companyID, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.Authorize(ctx, userID, companyID, domain.CapPostJournals); err != nil {
		return nil, err
	}

	entry, err := s.fetchCompanyEntry(ctx, companyID, journalEntryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: only DRAFT entries can be posted", apperrors.ErrBadRequest)
	}

	// Drafts may have been created before a month was closed.
	if err := s.periodGuard.ValidatePeriodNotClosed(ctx, companyID, entry.EntryDate); err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryLines(entry.Lines); err != nil {
		return nil, err
	}

	accounts, err := s.lineAccounts(ctx, companyID, entry.Lines)
	if err != nil {
		return nil, err
	}

	balanceChanges := computeBalanceChanges(entry.Lines, accounts)

	postedAt := time.Now()
	if err := s.journalRepo.PostJournalEntry(ctx, journalEntryID, balanceChanges, userID, postedAt); err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("journal_entry_id", journalEntryID))
		if errors.Is(err, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	entry.Status = domain.Posted
	entry.PostedAt = &postedAt
	entry.PostedBy = &userID

	logger.Info("Journal entry posted",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("total_debits", entry.TotalDebits().String()))
	return entry, nil
}

func (s *journalEntryService) DeleteJournalEntry(ctx context.Context, companyID, journalEntryID string, userID string) error {
	if err := s.Authorize(ctx, userID, companyID, domain.CapCreateJournals); err != nil {
		return err
	}

	entry, err := s.fetchCompanyEntry(ctx, companyID, journalEntryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: POSTED entries are permanent, reverse instead", apperrors.ErrBadRequest)
	}

	if err := s.journalRepo.DeleteDraftJournalEntry(ctx, journalEntryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("journal_entry_id", journalEntryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	s.LogInfo(ctx, "Draft journal entry deleted",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("entry_number", entry.EntryNumber))
	return nil
}

func (s *journalEntryService) ReverseJournalEntry(ctx context.Context, companyID, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.Authorize(ctx, userID, companyID, domain.CapPostJournals); err != nil {
		return nil, err
	}

	original, err := s.fetchCompanyEntry(ctx, companyID, journalEntryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: only POSTED entries can be reversed", apperrors.ErrBadRequest)
	}
	if original.ReferenceType != nil && *original.ReferenceType == domain.RefJournalReversal {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrConflict, original.EntryNumber)
	}

	now := time.Now()
	entryDate := now.UTC().Truncate(24 * time.Hour)
	if err := s.periodGuard.ValidatePeriodNotClosed(ctx, companyID, entryDate); err != nil {
		return nil, err
	}

	reversalID := uuid.NewString()
	lines := make([]domain.JournalEntryLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.JournalEntryLine{
			LineID:         uuid.NewString(),
			JournalEntryID: reversalID,
			AccountHeadID:  l.AccountHeadID,
			DebitAmount:    l.CreditAmount,
			CreditAmount:   l.DebitAmount,
			Description:    l.Description,
		}
	}

	accounts, err := s.lineAccounts(ctx, companyID, lines)
	if err != nil {
		return nil, err
	}
	balanceChanges := computeBalanceChanges(lines, accounts)

	refType := domain.RefJournalReversal
	reversal := domain.JournalEntry{
		JournalEntryID: reversalID,
		CompanyID:      companyID,
		EntryDate:      entryDate,
		Description:    fmt.Sprintf("Reversal of %s", original.EntryNumber),
		ReferenceType:  &refType,
		ReferenceID:    &original.JournalEntryID,
		Status:         domain.Posted,
		PostedAt:       &now,
		PostedBy:       &userID,
		Lines:          lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	saved, err := s.journalRepo.SavePostedJournalEntry(ctx, reversal, balanceChanges)
	if err != nil {
		s.LogError(ctx, err, "Failed to save reversal entry", slog.String("original_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_number", original.EntryNumber),
		slog.String("reversal_entry_number", saved.EntryNumber))
	return saved, nil
}

// fetchCompanyEntry loads a journal entry and enforces tenant scope.
func (s *journalEntryService) fetchCompanyEntry(ctx context.Context, companyID, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, journalEntryID)
		}
		s.LogError(ctx, err, "Failed to find journal entry", slog.String("journal_entry_id", journalEntryID))
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}
	if entry.CompanyID != companyID {
		return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, journalEntryID)
	}
	return entry, nil
}

// lineAccounts resolves the distinct accounts of the lines and verifies they
// belong to the company.
func (s *journalEntryService) lineAccounts(ctx context.Context, companyID string, lines []domain.JournalEntryLine) (map[string]domain.AccountHead, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountHeadID]; ok {
			continue
		}
		seen[l.AccountHeadID] = struct{}{}
		ids = append(ids, l.AccountHeadID)
	}

	accounts, err := s.accountRepo.FindAccountHeadsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load line accounts")
		return nil, fmt.Errorf("failed to load line accounts: %w", err)
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok || account.CompanyID != companyID {
			return nil, fmt.Errorf("%w: account head %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// validateLineAccounts additionally rejects postings to inactive accounts.
func (s *journalEntryService) validateLineAccounts(ctx context.Context, companyID string, lines []domain.JournalEntryLine) error {
	accounts, err := s.lineAccounts(ctx, companyID, lines)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if accounts[l.AccountHeadID].Status != domain.AccountActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accounts[l.AccountHeadID].Code)
		}
	}
	return nil
}

// computeBalanceChanges folds the lines into one signed delta per account,
// signed relative to each account's normal side.
func computeBalanceChanges(lines []domain.JournalEntryLine, accounts map[string]domain.AccountHead) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal, len(accounts))
	for _, l := range lines {
		account := accounts[l.AccountHeadID]
		delta := accounting.LineMovement(account.AccountType, l)
		changes[l.AccountHeadID] = changes[l.AccountHeadID].Add(delta)
	}
	return changes
}

func toDomainLines(journalEntryID string, reqLines []dto.JournalEntryLineRequest) []domain.JournalEntryLine {
	lines := make([]domain.JournalEntryLine, len(reqLines))
	for i, rl := range reqLines {
		lines[i] = domain.JournalEntryLine{
			LineID:         uuid.NewString(),
			JournalEntryID: journalEntryID,
			AccountHeadID:  rl.AccountHeadID,
			DebitAmount:    rl.DebitAmount,
			CreditAmount:   rl.CreditAmount,
			Description:    rl.Description,
		}
	}
	return lines
}
