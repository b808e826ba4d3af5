package domain

// Role is the closed set of roles a user can hold within a company.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
	RoleManager    Role = "MANAGER"
	RoleViewer     Role = "VIEWER"
)

// Capability is a single permitted operation class.
type Capability string

const (
	CapManageAccounts Capability = "MANAGE_ACCOUNTS"
	CapCreateJournals Capability = "CREATE_JOURNALS"
	CapPostJournals   Capability = "POST_JOURNALS"
	CapClosePeriods   Capability = "CLOSE_PERIODS"
	CapViewReports    Capability = "VIEW_REPORTS"
	CapManageSettings Capability = "MANAGE_SETTINGS"
)

// capabilityMatrix maps each role to the set of capabilities it grants.
// Evaluated once per request; no inline role-string checks elsewhere.
var capabilityMatrix = map[Role]map[Capability]struct{}{
	RoleAdmin: {
		CapManageAccounts: {},
		CapCreateJournals: {},
		CapPostJournals:   {},
		CapClosePeriods:   {},
		CapViewReports:    {},
		CapManageSettings: {},
	},
	RoleAccountant: {
		CapManageAccounts: {},
		CapCreateJournals: {},
		CapPostJournals:   {},
		CapClosePeriods:   {},
		CapViewReports:    {},
	},
	RoleManager: {
		CapCreateJournals: {},
		CapViewReports:    {},
	},
	RoleViewer: {
		CapViewReports: {},
	},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	caps, ok := capabilityMatrix[r]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}

// CompanyMember records a user's role inside a company.
type CompanyMember struct {
	UserID    string `json:"userID"`
	CompanyID string `json:"companyID"`
	Role      Role   `json:"role"`
}
