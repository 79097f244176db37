package services

import (
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/ipupy/tesoreria_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repositories and the
// shared authorizer. Construction order matters only for the ledger service,
// which the report workflow needs for posting computation.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	authorizer := NewAuthorizerService(repos.UserRepo)

	ledgerSvc := NewLedgerService(repos.FundRepo, repos.LedgerRepo, repos.TransactionRepo, authorizer)

	return &portssvc.ServiceContainer{
		Authorizer: authorizer,
		Church:     NewChurchService(repos.ChurchRepo, authorizer),
		Fund:       NewFundService(repos.FundRepo, repos.TransactionRepo, authorizer),
		User:       NewUserService(repos.UserRepo, authorizer),
		Report:     NewReportService(repos.ReportRepo, repos.PostingRepo, ledgerSvc, authorizer),
		Ledger:     ledgerSvc,
		Expense:    NewExpenseService(repos.ExpenseRepo, repos.PostingRepo, repos.FundRepo, repos.CategoryRepo, authorizer),
		Category:   NewCategoryService(repos.CategoryRepo, authorizer),
		Summary:    NewSummaryService(repos.ReportRepo, repos.ExpenseRepo, repos.TransactionRepo, repos.LedgerRepo, authorizer),
	}
}
