package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ChurchRepo      ChurchRepositoryFacade
	FundRepo        FundRepositoryFacade
	UserRepo        UserRepositoryFacade
	ReportRepo      ReportRepositoryFacade
	PostingRepo     PostingRepository
	TransactionRepo TransactionRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	ExpenseRepo     ExpenseRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
}
