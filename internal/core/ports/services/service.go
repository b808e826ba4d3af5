package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account    AccountHeadSvc
	Journal    JournalEntrySvc
	Period     PeriodCloseSvc
	Reporting  ReportingSvc
	Settings   SettingsSvc
	Authorizer CompanyAuthorizerSvc
}
