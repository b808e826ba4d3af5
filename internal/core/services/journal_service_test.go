package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/core/services"
	"github.com/tradegate/trading_erp/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalEntryRepository
	mockAccountRepo *MockAccountHeadRepository
	mockPeriodGuard *MockPeriodGuard
	service         portssvc.JournalEntrySvc

	companyID string
	userID    string

	cashAccount  domain.AccountHead
	salesAccount domain.AccountHead
	entryDate    time.Time
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalEntryRepository)
	s.mockAccountRepo = new(MockAccountHeadRepository)
	s.mockPeriodGuard = new(MockPeriodGuard)
	s.service = services.NewJournalEntryService(s.mockJournalRepo, s.mockAccountRepo, s.mockPeriodGuard)

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
	s.entryDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	s.cashAccount = domain.AccountHead{
		AccountHeadID: uuid.NewString(),
		CompanyID:     s.companyID,
		Code:          "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
		Status:        domain.AccountActive,
	}
	s.salesAccount = domain.AccountHead{
		AccountHeadID: uuid.NewString(),
		CompanyID:     s.companyID,
		Code:          "4000",
		Name:          "Sales Revenue",
		AccountType:   domain.Revenue,
		Status:        domain.AccountActive,
	}
}

func (s *JournalServiceTestSuite) accountsByID() map[string]domain.AccountHead {
	return map[string]domain.AccountHead{
		s.cashAccount.AccountHeadID:  s.cashAccount,
		s.salesAccount.AccountHeadID: s.salesAccount,
	}
}

func (s *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        s.entryDate,
		Description: "Cash sale",
		Lines: []dto.JournalEntryLineRequest{
			{AccountHeadID: s.cashAccount.AccountHeadID, DebitAmount: decimal.NewFromInt(500)},
			{AccountHeadID: s.salesAccount.AccountHeadID, CreditAmount: decimal.NewFromInt(500)},
		},
	}
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	req := s.balancedRequest()

	s.mockPeriodGuard.On("ValidatePeriodNotClosed", ctx, s.companyID, s.entryDate).Return(nil).Once()
	s.mockAccountRepo.On("FindAccountHeadsByIDs", ctx, mock.Anything).Return(s.accountsByID(), nil).Once()
	s.mockJournalRepo.On("SaveJournalEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Draft && len(e.Lines) == 2 && e.CompanyID == s.companyID
	})).Return(&domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		EntryNumber:    "JE-20250310-001",
		Status:         domain.Draft,
	}, nil).Once()

	entry, err := s.service.CreateJournalEntry(ctx, s.companyID, req, s.userID)

	s.Require().NoError(err)
	s.Equal("JE-20250310-001", entry.EntryNumber)
	s.Equal(domain.Draft, entry.Status)
	s.mockJournalRepo.AssertExpectations(s.T())
	s.mockPeriodGuard.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Lines[1].CreditAmount = decimal.NewFromInt(400)

	_, err := s.service.CreateJournalEntry(ctx, s.companyID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_WithinTolerance() {
	ctx := context.Background()
	req := s.balancedRequest()
	// 500.00 vs 499.995 differs by less than the 0.01 tolerance.
	req.Lines[1].CreditAmount = decimal.RequireFromString("499.995")

	s.mockPeriodGuard.On("ValidatePeriodNotClosed", ctx, s.companyID, s.entryDate).Return(nil).Once()
	s.mockAccountRepo.On("FindAccountHeadsByIDs", ctx, mock.Anything).Return(s.accountsByID(), nil).Once()
	s.mockJournalRepo.On("SaveJournalEntry", ctx, mock.Anything).Return(&domain.JournalEntry{Status: domain.Draft}, nil).Once()

	_, err := s.service.CreateJournalEntry(ctx, s.companyID, req, s.userID)

	s.NoError(err)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_SingleLine() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := s.service.CreateJournalEntry(ctx, s.companyID, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_EmptyLine() {
	ctx := context.Background()
	req := s.balancedRequest()
	req.Lines = append(req.Lines, dto.JournalEntryLineRequest{AccountHeadID: s.cashAccount.AccountHeadID})

	_, err := s.service.CreateJournalEntry(ctx, s.companyID, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_PeriodClosed() {
	ctx := context.Background()
	req := s.balancedRequest()

	s.mockPeriodGuard.On("ValidatePeriodNotClosed", ctx, s.companyID, s.entryDate).
		Return(apperrors.ErrBadRequest).Once()

	_, err := s.service.CreateJournalEntry(ctx, s.companyID, req, s.userID)

	s.ErrorIs(err, apperrors.ErrBadRequest)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccount() {
	ctx := context.Background()
	req := s.balancedRequest()

	inactive := s.salesAccount
	inactive.Status = domain.AccountInactive
	accounts := map[string]domain.AccountHead{
		s.cashAccount.AccountHeadID: s.cashAccount,
		inactive.AccountHeadID:      inactive,
	}

	s.mockPeriodGuard.On("ValidatePeriodNotClosed", ctx, s.companyID, s.entryDate).Return(nil).Once()
	s.mockAccountRepo.On("FindAccountHeadsByIDs", ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := s.service.CreateJournalEntry(ctx, s.companyID, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestUpdateJournalEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindJournalEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      s.companyID,
		Status:         domain.Posted,
	}, nil).Once()

	desc := "amended"
	_, err := s.service.UpdateJournalEntry(ctx, s.companyID, entryID, dto.UpdateJournalEntryRequest{Description: &desc}, s.userID)

	s.ErrorIs(err, apperrors.ErrBadRequest)
	s.mockJournalRepo.AssertNotCalled(s.T(), "UpdateJournalEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestUpdateJournalEntry_PostedConcurrently() {
	ctx := context.Background()
	entryID := uuid.NewString()

	// The entry is still DRAFT when the service reads it, but another request
	// posts it before the repository write lands. The status-guarded UPDATE
	// matches zero rows and the repository rejects the amendment.
	draft := &domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      s.companyID,
		EntryDate:      s.entryDate,
		Status:         domain.Draft,
		Lines: []domain.JournalEntryLine{
			{LineID: uuid.NewString(), AccountHeadID: s.cashAccount.AccountHeadID, DebitAmount: decimal.NewFromInt(500)},
			{LineID: uuid.NewString(), AccountHeadID: s.salesAccount.AccountHeadID, CreditAmount: decimal.NewFromInt(500)},
		},
	}

	s.mockJournalRepo.On("FindJournalEntryByID", ctx, entryID).Return(draft, nil).Once()
	s.mockPeriodGuard.On("ValidatePeriodNotClosed", ctx, s.companyID, s.entryDate).Return(nil).Once()
	s.mockAccountRepo.On("FindAccountHeadsByIDs", ctx, mock.Anything).Return(s.accountsByID(), nil).Once()
	s.mockJournalRepo.On("UpdateJournalEntry", ctx, mock.Anything).
		Return(fmt.Errorf("%w: journal entry %s is not in DRAFT status", apperrors.ErrBadRequest, entryID)).Once()

	desc := "amended"
	_, err := s.service.UpdateJournalEntry(ctx, s.companyID, entryID, dto.UpdateJournalEntryRequest{Description: &desc}, s.userID)

	s.ErrorIs(err, apperrors.ErrBadRequest)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestDeleteJournalEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindJournalEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      s.companyID,
		Status:         domain.Posted,
	}, nil).Once()

	err := s.service.DeleteJournalEntry(ctx, s.companyID, entryID, s.userID)

	s.ErrorIs(err, apperrors.ErrBadRequest)
	s.mockJournalRepo.AssertNotCalled(s.T(), "DeleteDraftJournalEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()

	draft := &domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      s.companyID,
		EntryNumber:    "JE-20250310-001",
		EntryDate:      s.entryDate,
		Status:         domain.Draft,
		Lines: []domain.JournalEntryLine{
			{LineID: uuid.NewString(), AccountHeadID: s.cashAccount.AccountHeadID, DebitAmount: decimal.NewFromInt(500), CreditAmount: decimal.Zero},
			{LineID: uuid.NewString(), AccountHeadID: s.salesAccount.AccountHeadID, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(500)},
		},
	}

	s.mockJournalRepo.On("FindJournalEntryByID", ctx, entryID).Return(draft, nil).Once()
	s.mockPeriodGuard.On("ValidatePeriodNotClosed", ctx, s.companyID, s.entryDate).Return(nil).Once()
	s.mockAccountRepo.On("FindAccountHeadsByIDs", ctx, mock.Anything).Return(s.accountsByID(), nil).Once()
	s.mockJournalRepo.On("PostJournalEntry", ctx, entryID, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		// Both accounts move on their normal side by 500.
		return changes[s.cashAccount.AccountHeadID].Equal(decimal.NewFromInt(500)) &&
			changes[s.salesAccount.AccountHeadID].Equal(decimal.NewFromInt(500))
	}), s.userID, mock.Anything).Return(nil).Once()

	entry, err := s.service.PostJournalEntry(ctx, s.companyID, entryID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Posted, entry.Status)
	s.NotNil(entry.PostedAt)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindJournalEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      s.companyID,
		Status:         domain.Posted,
	}, nil).Once()

	_, err := s.service.PostJournalEntry(ctx, s.companyID, entryID, s.userID)

	s.ErrorIs(err, apperrors.ErrBadRequest)
}

func (s *JournalServiceTestSuite) TestReverseJournalEntry_SwapsSides() {
	ctx := context.Background()
	entryID := uuid.NewString()

	posted := &domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      s.companyID,
		EntryNumber:    "JE-20250310-001",
		EntryDate:      s.entryDate,
		Status:         domain.Posted,
		Lines: []domain.JournalEntryLine{
			{LineID: uuid.NewString(), AccountHeadID: s.cashAccount.AccountHeadID, DebitAmount: decimal.NewFromInt(500), CreditAmount: decimal.Zero},
			{LineID: uuid.NewString(), AccountHeadID: s.salesAccount.AccountHeadID, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(500)},
		},
	}

	s.mockJournalRepo.On("FindJournalEntryByID", ctx, entryID).Return(posted, nil).Once()
	s.mockPeriodGuard.On("ValidatePeriodNotClosed", ctx, s.companyID, mock.Anything).Return(nil).Once()
	s.mockAccountRepo.On("FindAccountHeadsByIDs", ctx, mock.Anything).Return(s.accountsByID(), nil).Once()
	s.mockJournalRepo.On("SavePostedJournalEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		if e.Status != domain.Posted || len(e.Lines) != 2 {
			return false
		}
		// The cash line flips from debit 500 to credit 500.
		var cashLine domain.JournalEntryLine
		for _, l := range e.Lines {
			if l.AccountHeadID == s.cashAccount.AccountHeadID {
				cashLine = l
			}
		}
		return cashLine.CreditAmount.Equal(decimal.NewFromInt(500)) && cashLine.DebitAmount.IsZero() &&
			e.ReferenceType != nil && *e.ReferenceType == domain.RefJournalReversal &&
			e.ReferenceID != nil && *e.ReferenceID == entryID
	}), mock.Anything).Return(&domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		EntryNumber:    "JE-20250415-001",
		Status:         domain.Posted,
	}, nil).Once()

	reversal, err := s.service.ReverseJournalEntry(ctx, s.companyID, entryID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.Posted, reversal.Status)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestReverseJournalEntry_DraftRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindJournalEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      s.companyID,
		Status:         domain.Draft,
	}, nil).Once()

	_, err := s.service.ReverseJournalEntry(ctx, s.companyID, entryID, s.userID)

	s.ErrorIs(err, apperrors.ErrBadRequest)
}

func (s *JournalServiceTestSuite) TestReverseJournalEntry_ReversalRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	refType := domain.RefJournalReversal

	s.mockJournalRepo.On("FindJournalEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      s.companyID,
		Status:         domain.Posted,
		ReferenceType:  &refType,
	}, nil).Once()

	_, err := s.service.ReverseJournalEntry(ctx, s.companyID, entryID, s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *JournalServiceTestSuite) TestGetJournalEntry_OtherCompanyHidden() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindJournalEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		JournalEntryID: entryID,
		CompanyID:      uuid.NewString(),
		Status:         domain.Posted,
	}, nil).Once()

	_, err := s.service.GetJournalEntryByID(ctx, s.companyID, entryID, s.userID)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func TestTotalDebitsCredits(t *testing.T) {
	entry := domain.JournalEntry{
		Lines: []domain.JournalEntryLine{
			{DebitAmount: decimal.NewFromInt(300), CreditAmount: decimal.Zero},
			{DebitAmount: decimal.NewFromInt(200), CreditAmount: decimal.Zero},
			{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(500)},
		},
	}
	assert.True(t, entry.TotalDebits().Equal(decimal.NewFromInt(500)))
	assert.True(t, entry.TotalCredits().Equal(decimal.NewFromInt(500)))
}
