package domain

import "time"

// Setting is a company-scoped key/value configuration entry
// (tax rate, base currency, company display name, ...).
type Setting struct {
	CompanyID string    `json:"companyID"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// Well-known setting keys.
const (
	SettingTaxRate     = "tax_rate"
	SettingCurrency    = "currency"
	SettingCompanyName = "company_name"
)
