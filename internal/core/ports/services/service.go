package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Authorizer AuthorizerSvc
	Church     ChurchSvcFacade
	Fund       FundSvcFacade
	User       UserSvcFacade
	Report     ReportSvcFacade
	Ledger     LedgerSvcFacade
	Expense    ExpenseSvcFacade
	Category   CategorySvcFacade
	Summary    SummarySvc
}
