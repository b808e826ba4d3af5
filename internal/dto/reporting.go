package dto

import "time"

// AsOfParams selects the cut-off date for trial balance and balance sheet.
// Defaults to today when absent.
type AsOfParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// GeneralLedgerParams selects the account window for a general ledger query.
type GeneralLedgerParams struct {
	DateFrom time.Time `form:"dateFrom" binding:"required" time_format:"2006-01-02"`
	DateTo   time.Time `form:"dateTo" binding:"required" time_format:"2006-01-02"`
}
