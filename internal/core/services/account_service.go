package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
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

var accountCodePattern = regexp.MustCompile(`^\d{4,10}$`)

type accountHeadService struct {
	BaseService
	accountRepo portsrepo.AccountHeadRepositoryFacade
	projector   *BalanceProjector
}

// AccountServiceOption configures the account head service.
type AccountServiceOption func(*accountHeadService)

// WithAccountAuthorizer wires the company authorizer.
func WithAccountAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) AccountServiceOption {
	return func(s *accountHeadService) {
		s.Authorizer = authorizer
	}
}

// NewAccountHeadService creates a new account head service.
func NewAccountHeadService(accountRepo portsrepo.AccountHeadRepositoryFacade, projector *BalanceProjector, opts ...AccountServiceOption) portssvc.AccountHeadSvc {
	svc := &accountHeadService{
		accountRepo: accountRepo,
		projector:   projector,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.AccountHeadSvc = (*accountHeadService)(nil)

func (s *accountHeadService) CreateAccountHead(ctx context.Context, companyID string, req dto.CreateAccountHeadRequest, userID string) (*domain.AccountHead, error) {
	logger := s.GetLogger(ctx)

	if err := s.Authorize(ctx, userID, companyID, domain.CapManageAccounts); err != nil {
		return nil, err
	}

	if !accountCodePattern.MatchString(req.Code) {
		return nil, fmt.Errorf("%w: account code must be 4 to 10 digits", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %s", apperrors.ErrValidation, req.AccountType)
	}

	if _, err := s.accountRepo.FindAccountHeadByCode(ctx, companyID, req.Code); err == nil {
		return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrConflict, req.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness")
		return nil, fmt.Errorf("failed to check account code uniqueness: %w", err)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.fetchCompanyAccount(ctx, companyID, *req.ParentAccountID)
		if err != nil {
			return nil, err
		}
		parentID = parent.AccountHeadID
	}

	now := time.Now()
	account := domain.AccountHead{
		AccountHeadID:   uuid.NewString(),
		CompanyID:       companyID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		OpeningBalance:  req.OpeningBalance,
		CurrentBalance:  req.OpeningBalance,
		Status:          domain.AccountActive,
		IsSystemAccount: req.IsSystemAccount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccountHead(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account head", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account head: %w", err)
	}

	logger.Info("Account head created",
		slog.String("account_head_id", account.AccountHeadID),
		slog.String("code", account.Code),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountHeadService) GetAccountHeadByID(ctx context.Context, companyID, accountHeadID string, userID string) (*domain.AccountHead, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}
	return s.fetchCompanyAccount(ctx, companyID, accountHeadID)
}

func (s *accountHeadService) ListAccountHeads(ctx context.Context, companyID string, userID string) ([]domain.AccountHead, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccountHeads(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account heads")
		return nil, fmt.Errorf("failed to list account heads: %w", err)
	}
	return accounts, nil
}

func (s *accountHeadService) GetAccountTree(ctx context.Context, companyID string, userID string) ([]dto.AccountTreeNode, error) {
	accounts, err := s.ListAccountHeads(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	return buildAccountTree(accounts), nil
}

func (s *accountHeadService) UpdateAccountHead(ctx context.Context, companyID, accountHeadID string, req dto.UpdateAccountHeadRequest, userID string) (*domain.AccountHead, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapManageAccounts); err != nil {
		return nil, err
	}

	account, err := s.fetchCompanyAccount(ctx, companyID, accountHeadID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
		}
		account.Name = *req.Name
	}
	if req.Status != nil {
		account.Status = *req.Status
	}
	if req.ParentAccountID != nil {
		newParentID := *req.ParentAccountID
		if newParentID == "" {
			account.ParentAccountID = ""
		} else {
			if newParentID == account.AccountHeadID {
				return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
			}
			parent, err := s.fetchCompanyAccount(ctx, companyID, newParentID)
			if err != nil {
				return nil, err
			}
			if err := s.ensureNoCycle(ctx, companyID, account.AccountHeadID, parent); err != nil {
				return nil, err
			}
			account.ParentAccountID = parent.AccountHeadID
		}
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccountHead(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account head", slog.String("account_head_id", accountHeadID))
		return nil, fmt.Errorf("failed to update account head: %w", err)
	}

	s.LogInfo(ctx, "Account head updated", slog.String("account_head_id", accountHeadID))
	return account, nil
}

func (s *accountHeadService) DeleteAccountHead(ctx context.Context, companyID, accountHeadID string, userID string) error {
	if err := s.Authorize(ctx, userID, companyID, domain.CapManageAccounts); err != nil {
		return err
	}

	account, err := s.fetchCompanyAccount(ctx, companyID, accountHeadID)
	if err != nil {
		return err
	}

	if account.IsSystemAccount {
		return fmt.Errorf("%w: system accounts cannot be deleted", apperrors.ErrBadRequest)
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, accountHeadID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account children", slog.String("account_head_id", accountHeadID))
		return fmt.Errorf("failed to check account children: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s has child accounts", apperrors.ErrBadRequest, account.Code)
	}

	hasLines, err := s.accountRepo.HasJournalLines(ctx, accountHeadID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account journal lines", slog.String("account_head_id", accountHeadID))
		return fmt.Errorf("failed to check account journal lines: %w", err)
	}
	if hasLines {
		return fmt.Errorf("%w: account %s is referenced by journal entries", apperrors.ErrBadRequest, account.Code)
	}

	if err := s.accountRepo.DeleteAccountHead(ctx, accountHeadID); err != nil {
		s.LogError(ctx, err, "Failed to delete account head", slog.String("account_head_id", accountHeadID))
		return fmt.Errorf("failed to delete account head: %w", err)
	}

	s.LogInfo(ctx, "Account head deleted",
		slog.String("account_head_id", accountHeadID),
		slog.String("code", account.Code))
	return nil
}

func (s *accountHeadService) GetAccountBalance(ctx context.Context, companyID, accountHeadID string, req dto.AccountBalanceParams, userID string) (decimal.Decimal, error) {
	if err := s.Authorize(ctx, userID, companyID, domain.CapViewReports); err != nil {
		return decimal.Zero, err
	}

	account, err := s.fetchCompanyAccount(ctx, companyID, accountHeadID)
	if err != nil {
		return decimal.Zero, err
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	return s.projector.BalanceAsOf(ctx, companyID, account, asOf, accounting.StatementPrecision)
}

// fetchCompanyAccount loads an account head and enforces tenant scope. An
// account of another company surfaces as not found.
func (s *accountHeadService) fetchCompanyAccount(ctx context.Context, companyID, accountHeadID string) (*domain.AccountHead, error) {
	account, err := s.accountRepo.FindAccountHeadByID(ctx, accountHeadID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account head %s", apperrors.ErrNotFound, accountHeadID)
		}
		s.LogError(ctx, err, "Failed to find account head", slog.String("account_head_id", accountHeadID))
		return nil, fmt.Errorf("failed to find account head: %w", err)
	}
	if account.CompanyID != companyID {
		return nil, fmt.Errorf("%w: account head %s", apperrors.ErrNotFound, accountHeadID)
	}
	return account, nil
}

// ensureNoCycle walks from the candidate parent to the root and fails when the
// account being reparented appears on the path.
func (s *accountHeadService) ensureNoCycle(ctx context.Context, companyID, accountHeadID string, parent *domain.AccountHead) error {
	current := parent
	for {
		if current.AccountHeadID == accountHeadID {
			return fmt.Errorf("%w: moving the account under %s would create a cycle", apperrors.ErrValidation, parent.Code)
		}
		if current.ParentAccountID == "" {
			return nil
		}
		next, err := s.fetchCompanyAccount(ctx, companyID, current.ParentAccountID)
		if err != nil {
			return err
		}
		current = next
	}
}

// buildAccountTree nests accounts by parent reference, children ordered by
// code ascending at every level. Accounts whose parent is missing from the
// set are treated as roots.
func buildAccountTree(accounts []domain.AccountHead) []dto.AccountTreeNode {
	byID := make(map[string]domain.AccountHead, len(accounts))
	for _, a := range accounts {
		byID[a.AccountHeadID] = a
	}

	childrenOf := make(map[string][]domain.AccountHead)
	var roots []domain.AccountHead
	for _, a := range accounts {
		if a.ParentAccountID != "" {
			if _, ok := byID[a.ParentAccountID]; ok {
				childrenOf[a.ParentAccountID] = append(childrenOf[a.ParentAccountID], a)
				continue
			}
		}
		roots = append(roots, a)
	}

	var build func(nodes []domain.AccountHead) []dto.AccountTreeNode
	build = func(nodes []domain.AccountHead) []dto.AccountTreeNode {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Code < nodes[j].Code })
		out := make([]dto.AccountTreeNode, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, dto.AccountTreeNode{
				AccountHeadID:  n.AccountHeadID,
				Code:           n.Code,
				Name:           n.Name,
				AccountType:    n.AccountType,
				Status:         n.Status,
				CurrentBalance: n.CurrentBalance,
				Children:       build(childrenOf[n.AccountHeadID]),
			})
		}
		return out
	}
	return build(roots)
}
