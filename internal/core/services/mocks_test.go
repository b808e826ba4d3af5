package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tradegate/trading_erp/internal/core/domain"
	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
)

// --- Mock AccountHeadRepository ---

type MockAccountHeadRepository struct {
	mock.Mock
}

var _ portsrepo.AccountHeadRepositoryFacade = (*MockAccountHeadRepository)(nil)

func (m *MockAccountHeadRepository) FindAccountHeadByID(ctx context.Context, accountHeadID string) (*domain.AccountHead, error) {
	args := m.Called(ctx, accountHeadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountHead), args.Error(1)
}

func (m *MockAccountHeadRepository) FindAccountHeadsByIDs(ctx context.Context, accountHeadIDs []string) (map[string]domain.AccountHead, error) {
	args := m.Called(ctx, accountHeadIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountHead), args.Error(1)
}

func (m *MockAccountHeadRepository) FindAccountHeadByCode(ctx context.Context, companyID, code string) (*domain.AccountHead, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountHead), args.Error(1)
}

func (m *MockAccountHeadRepository) ListAccountHeads(ctx context.Context, companyID string) ([]domain.AccountHead, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountHead), args.Error(1)
}

func (m *MockAccountHeadRepository) HasChildren(ctx context.Context, accountHeadID string) (bool, error) {
	args := m.Called(ctx, accountHeadID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountHeadRepository) HasJournalLines(ctx context.Context, accountHeadID string) (bool, error) {
	args := m.Called(ctx, accountHeadID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountHeadRepository) SaveAccountHead(ctx context.Context, account domain.AccountHead) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountHeadRepository) UpdateAccountHead(ctx context.Context, account domain.AccountHead) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountHeadRepository) DeleteAccountHead(ctx context.Context, accountHeadID string) error {
	args := m.Called(ctx, accountHeadID)
	return args.Error(0)
}

func (m *MockAccountHeadRepository) FindAccountHeadsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountHeadIDs []string) (map[string]domain.AccountHead, error) {
	args := m.Called(ctx, tx, accountHeadIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountHead), args.Error(1)
}

func (m *MockAccountHeadRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, userID, now)
	return args.Error(0)
}

// --- Mock JournalEntryRepository ---

type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListJournalEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) PostJournalEntry(ctx context.Context, journalEntryID string, balanceChanges map[string]decimal.Decimal, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, journalEntryID, balanceChanges, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) SavePostedJournalEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) DeleteDraftJournalEntry(ctx context.Context, journalEntryID string) error {
	args := m.Called(ctx, journalEntryID)
	return args.Error(0)
}

// --- Mock PeriodCloseRepository ---

type MockPeriodCloseRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodCloseRepository = (*MockPeriodCloseRepository)(nil)

func (m *MockPeriodCloseRepository) FindPeriodCloseByDate(ctx context.Context, companyID string, periodDate time.Time) (*domain.PeriodClose, error) {
	args := m.Called(ctx, companyID, periodDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodClose), args.Error(1)
}

func (m *MockPeriodCloseRepository) FindPeriodCloseByID(ctx context.Context, periodCloseID string) (*domain.PeriodClose, error) {
	args := m.Called(ctx, periodCloseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodClose), args.Error(1)
}

func (m *MockPeriodCloseRepository) SavePeriodClose(ctx context.Context, period domain.PeriodClose) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodCloseRepository) UpdatePeriodClose(ctx context.Context, period domain.PeriodClose) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodCloseRepository) ListPeriodCloses(ctx context.Context, companyID string) ([]domain.PeriodClose, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodClose), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetAccountActivityBefore(ctx context.Context, companyID, accountHeadID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountHeadID, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetLedgerLines(ctx context.Context, companyID, accountHeadID string, dateFrom, dateTo time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, companyID, accountHeadID, dateFrom, dateTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

// --- Mock PeriodGuard ---

type MockPeriodGuard struct {
	mock.Mock
}

var _ portssvc.PeriodGuardSvc = (*MockPeriodGuard)(nil)

func (m *MockPeriodGuard) ValidatePeriodNotClosed(ctx context.Context, companyID string, date time.Time) error {
	args := m.Called(ctx, companyID, date)
	return args.Error(0)
}
