package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradegate/trading_erp/internal/apperrors"
	"github.com/tradegate/trading_erp/internal/core/domain"
)

// BalanceTolerance absorbs floating rounding noise when comparing the debit
// and credit sides of an entry or a report total.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// Report precisions: trial balance and balance sheet round to 2 decimal
// places, the general ledger to 4.
const (
	StatementPrecision int32 = 2
	LedgerPrecision    int32 = 4
)

// WithinTolerance reports whether a and b differ by at most BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}

// Round applies round-half-up at the given number of decimal places.
// Reports apply it at each aggregation step, not once at the end.
func Round(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// NetMovement nets debit and credit sums onto the account's normal side:
// debit-normal accounts grow with debits, credit-normal with credits.
func NetMovement(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return totalDebit.Sub(totalCredit)
	}
	return totalCredit.Sub(totalDebit)
}

// LineMovement is NetMovement for a single journal line.
func LineMovement(accountType domain.AccountType, line domain.JournalEntryLine) decimal.Decimal {
	return NetMovement(accountType, line.DebitAmount, line.CreditAmount)
}

// ProjectBalance computes opening + net movement, rounded to the requested
// precision. Every report derives account balances through this single
// function so that trial balance, balance sheet and general ledger cannot
// drift apart.
func ProjectBalance(accountType domain.AccountType, opening, totalDebit, totalCredit decimal.Decimal, precision int32) decimal.Decimal {
	return Round(opening.Add(NetMovement(accountType, totalDebit, totalCredit)), precision)
}

// ValidateEntryLines checks the journal entry invariants:
// at least two lines, non-negative amounts, no empty lines, and
// sum(debits) == sum(credits) within BalanceTolerance.
func ValidateEntryLines(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	debitSum := decimal.Zero
	creditSum := decimal.Zero
	for _, line := range lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: line amounts must not be negative for account %s", apperrors.ErrValidation, line.AccountHeadID)
		}
		if line.DebitAmount.IsZero() && line.CreditAmount.IsZero() {
			return fmt.Errorf("%w: line for account %s has neither debit nor credit amount", apperrors.ErrValidation, line.AccountHeadID)
		}
		debitSum = debitSum.Add(line.DebitAmount)
		creditSum = creditSum.Add(line.CreditAmount)
	}

	if !WithinTolerance(debitSum, creditSum) {
		return fmt.Errorf("%w: journal entry must be balanced: debits sum is %s and credits sum is %s",
			apperrors.ErrValidation, debitSum.String(), creditSum.String())
	}
	return nil
}
