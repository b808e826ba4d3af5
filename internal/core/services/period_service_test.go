package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/core/services"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo    *MockPeriodCloseRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.PeriodCloseSvc

	companyID string
	userID    string
}

func (s *PeriodServiceTestSuite) SetupTest() {
	s.mockPeriodRepo = new(MockPeriodCloseRepository)
	s.mockReportingRepo = new(MockReportingRepository)
	s.service = services.NewPeriodCloseService(s.mockPeriodRepo, s.mockReportingRepo)

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
}

func (s *PeriodServiceTestSuite) TestValidatePeriodNotClosed_NoCloseRecord() {
	ctx := context.Background()
	marchEnd := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	s.mockPeriodRepo.On("FindPeriodCloseByDate", ctx, s.companyID, marchEnd).
		Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.ValidatePeriodNotClosed(ctx, s.companyID, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	s.NoError(err)
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestValidatePeriodNotClosed_Closed() {
	ctx := context.Background()
	marchEnd := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	s.mockPeriodRepo.On("FindPeriodCloseByDate", ctx, s.companyID, marchEnd).
		Return(&domain.PeriodClose{
			CompanyID:  s.companyID,
			PeriodDate: marchEnd,
			Status:     domain.PeriodClosed,
		}, nil).Once()

	err := s.service.ValidatePeriodNotClosed(ctx, s.companyID, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	s.ErrorIs(err, apperrors.ErrBadRequest)
	s.ErrorContains(err, "March 2025")
}

func (s *PeriodServiceTestSuite) TestValidatePeriodNotClosed_Reopened() {
	ctx := context.Background()
	marchEnd := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	s.mockPeriodRepo.On("FindPeriodCloseByDate", ctx, s.companyID, marchEnd).
		Return(&domain.PeriodClose{
			CompanyID:  s.companyID,
			PeriodDate: marchEnd,
			Status:     domain.PeriodReopened,
		}, nil).Once()

	err := s.service.ValidatePeriodNotClosed(ctx, s.companyID, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	s.NoError(err)
}

func (s *PeriodServiceTestSuite) TestCloseMonth_Success() {
	ctx := context.Background()
	marchEnd := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	febEnd := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)

	s.mockPeriodRepo.On("FindPeriodCloseByDate", ctx, s.companyID, marchEnd).
		Return(nil, apperrors.ErrNotFound).Once()

	// Cumulative retained earnings: 3000 at March end, 1000 at February end.
	s.mockReportingRepo.On("GetAccountActivity", ctx, s.companyID, marchEnd).
		Return([]domain.AccountActivity{
			{AccountHeadID: "rev", AccountType: domain.Revenue, TotalCredit: decimal.NewFromInt(4000)},
			{AccountHeadID: "exp", AccountType: domain.Expense, TotalDebit: decimal.NewFromInt(1000)},
			{AccountHeadID: "cash", AccountType: domain.Asset, TotalDebit: decimal.NewFromInt(4000), TotalCredit: decimal.NewFromInt(1000)},
		}, nil).Once()
	s.mockReportingRepo.On("GetAccountActivity", ctx, s.companyID, febEnd).
		Return([]domain.AccountActivity{
			{AccountHeadID: "rev", AccountType: domain.Revenue, TotalCredit: decimal.NewFromInt(1500)},
			{AccountHeadID: "exp", AccountType: domain.Expense, TotalDebit: decimal.NewFromInt(500)},
		}, nil).Once()

	s.mockPeriodRepo.On("SavePeriodClose", ctx, mock.MatchedBy(func(p domain.PeriodClose) bool {
		return p.CompanyID == s.companyID &&
			p.PeriodDate.Equal(marchEnd) &&
			p.Status == domain.PeriodClosed &&
			p.NetProfit.Equal(decimal.NewFromInt(2000))
	})).Return(nil).Once()

	period, err := s.service.CloseMonth(ctx, s.companyID, 2025, time.March, s.userID)

	s.Require().NoError(err)
	s.True(period.NetProfit.Equal(decimal.NewFromInt(2000)))
	s.mockPeriodRepo.AssertExpectations(s.T())
	s.mockReportingRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestCloseMonth_AlreadyClosed() {
	ctx := context.Background()
	marchEnd := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	s.mockPeriodRepo.On("FindPeriodCloseByDate", ctx, s.companyID, marchEnd).
		Return(&domain.PeriodClose{
			CompanyID:  s.companyID,
			PeriodDate: marchEnd,
			Status:     domain.PeriodClosed,
		}, nil).Once()

	_, err := s.service.CloseMonth(ctx, s.companyID, 2025, time.March, s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "SavePeriodClose", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestCloseMonth_ReclosesReopenedRow() {
	ctx := context.Background()
	marchEnd := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	febEnd := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	reason := "correction"
	periodCloseID := uuid.NewString()

	s.mockPeriodRepo.On("FindPeriodCloseByDate", ctx, s.companyID, marchEnd).
		Return(&domain.PeriodClose{
			PeriodCloseID: periodCloseID,
			CompanyID:     s.companyID,
			PeriodDate:    marchEnd,
			Status:        domain.PeriodReopened,
			ReopenReason:  &reason,
		}, nil).Once()
	s.mockReportingRepo.On("GetAccountActivity", ctx, s.companyID, marchEnd).
		Return([]domain.AccountActivity{}, nil).Once()
	s.mockReportingRepo.On("GetAccountActivity", ctx, s.companyID, febEnd).
		Return([]domain.AccountActivity{}, nil).Once()

	s.mockPeriodRepo.On("UpdatePeriodClose", ctx, mock.MatchedBy(func(p domain.PeriodClose) bool {
		return p.PeriodCloseID == periodCloseID &&
			p.Status == domain.PeriodClosed &&
			p.ReopenReason != nil
	})).Return(nil).Once()

	period, err := s.service.CloseMonth(ctx, s.companyID, 2025, time.March, s.userID)

	s.Require().NoError(err)
	s.Equal(periodCloseID, period.PeriodCloseID)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "SavePeriodClose", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestCloseMonth_LeapFebruary() {
	ctx := context.Background()
	febEnd := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	janEnd := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	s.mockPeriodRepo.On("FindPeriodCloseByDate", ctx, s.companyID, febEnd).
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockReportingRepo.On("GetAccountActivity", ctx, s.companyID, febEnd).
		Return([]domain.AccountActivity{}, nil).Once()
	s.mockReportingRepo.On("GetAccountActivity", ctx, s.companyID, janEnd).
		Return([]domain.AccountActivity{}, nil).Once()
	s.mockPeriodRepo.On("SavePeriodClose", ctx, mock.Anything).Return(nil).Once()

	period, err := s.service.CloseMonth(ctx, s.companyID, 2024, time.February, s.userID)

	s.Require().NoError(err)
	s.True(period.PeriodDate.Equal(febEnd))
}

func (s *PeriodServiceTestSuite) TestReopenPeriod_Success() {
	ctx := context.Background()
	periodCloseID := uuid.NewString()

	s.mockPeriodRepo.On("FindPeriodCloseByID", ctx, periodCloseID).
		Return(&domain.PeriodClose{
			PeriodCloseID: periodCloseID,
			CompanyID:     s.companyID,
			PeriodDate:    time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
			Status:        domain.PeriodClosed,
		}, nil).Once()
	s.mockPeriodRepo.On("UpdatePeriodClose", ctx, mock.MatchedBy(func(p domain.PeriodClose) bool {
		return p.Status == domain.PeriodReopened &&
			p.ReopenReason != nil && *p.ReopenReason == "late vendor invoice" &&
			p.ReopenedBy != nil && *p.ReopenedBy == s.userID &&
			p.ReopenedAt != nil
	})).Return(nil).Once()

	period, err := s.service.ReopenPeriod(ctx, s.companyID, periodCloseID, "late vendor invoice", s.userID)

	s.Require().NoError(err)
	s.Equal(domain.PeriodReopened, period.Status)
	s.mockPeriodRepo.AssertExpectations(s.T())
}

func (s *PeriodServiceTestSuite) TestReopenPeriod_BlankReason() {
	ctx := context.Background()

	_, err := s.service.ReopenPeriod(ctx, s.companyID, uuid.NewString(), "   ", s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "FindPeriodCloseByID", mock.Anything, mock.Anything)
}

func (s *PeriodServiceTestSuite) TestReopenPeriod_NotClosed() {
	ctx := context.Background()
	periodCloseID := uuid.NewString()

	s.mockPeriodRepo.On("FindPeriodCloseByID", ctx, periodCloseID).
		Return(&domain.PeriodClose{
			PeriodCloseID: periodCloseID,
			CompanyID:     s.companyID,
			Status:        domain.PeriodReopened,
		}, nil).Once()

	_, err := s.service.ReopenPeriod(ctx, s.companyID, periodCloseID, "again", s.userID)

	s.ErrorIs(err, apperrors.ErrBadRequest)
}

func (s *PeriodServiceTestSuite) TestReopenPeriod_OtherCompanyHidden() {
	ctx := context.Background()
	periodCloseID := uuid.NewString()

	s.mockPeriodRepo.On("FindPeriodCloseByID", ctx, periodCloseID).
		Return(&domain.PeriodClose{
			PeriodCloseID: periodCloseID,
			CompanyID:     uuid.NewString(),
			Status:        domain.PeriodClosed,
		}, nil).Once()

	_, err := s.service.ReopenPeriod(ctx, s.companyID, periodCloseID, "reason", s.userID)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockPeriodRepo.AssertNotCalled(s.T(), "UpdatePeriodClose", mock.Anything, mock.Anything)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC), time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := domain.LastDayOfMonth(c.in)
		if !got.Equal(c.want) {
			t.Errorf("LastDayOfMonth(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
