package pgsql

import (
	portsrepo "github.com/ipupy/tesoreria_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	churchRepo := newPgxChurchRepository(dbPool)
	fundRepo := newPgxFundRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportRepo := newPgxReportRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	postingRepo := newPgxPostingRepository(dbPool, fundRepo)

	return portsrepo.RepositoryProvider{
		ChurchRepo:      churchRepo,
		FundRepo:        fundRepo,
		UserRepo:        userRepo,
		ReportRepo:      reportRepo,
		PostingRepo:     postingRepo,
		TransactionRepo: transactionRepo,
		LedgerRepo:      ledgerRepo,
		ExpenseRepo:     expenseRepo,
		CategoryRepo:    categoryRepo,
	}
}
