package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bankingmngt/banking_mngt_backend/internal/apperrors"
	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	portsrepo "github.com/bankingmngt/banking_mngt_backend/internal/core/ports/repositories"
	portssvc "github.com/bankingmngt/banking_mngt_backend/internal/core/ports/services"
	"github.com/bankingmngt/banking_mngt_backend/internal/core/services"
	"github.com/bankingmngt/banking_mngt_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) CreateAccount(ctx context.Context, owner string, createdBy string, now time.Time) (*domain.Account, error) {
	args := m.Called(ctx, owner, createdBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, accountID, delta, updatedBy, now)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransfer(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, txn, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAccountWithTransactions(ctx context.Context, accountID int64) (*domain.Account, []domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).([]domain.Transaction), args.Error(2)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.LedgerSvcFacade
	ctx             context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockTxnRepo)
	suite.ctx = context.Background()
}

const testPrincipal = "principal-1"

func (suite *LedgerServiceTestSuite) TestCreateAccount_Success() {
	expected := &domain.Account{AccountID: 1, Owner: "Alice", Balance: decimal.Zero}
	suite.mockAccountRepo.On("CreateAccount", suite.ctx, "Alice", testPrincipal, mock.AnythingOfType("time.Time")).Return(expected, nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{Owner: "Alice"}, testPrincipal)

	suite.NoError(err)
	suite.Equal(int64(1), account.AccountID)
	suite.True(account.Balance.IsZero(), "new accounts start with a zero balance")
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_EmptyOwner() {
	_, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{Owner: "   "}, testPrincipal)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *LedgerServiceTestSuite) TestGetAccountWithHistory_Success() {
	account := &domain.Account{AccountID: 1, Owner: "Alice", Balance: decimal.NewFromInt(60)}
	history := []domain.Transaction{
		{TransactionID: 1, FromAccountID: 1, ToAccountID: 2, Amount: decimal.NewFromInt(40)},
	}
	suite.mockTxnRepo.On("FindAccountWithTransactions", suite.ctx, int64(1)).Return(account, history, nil).Once()

	gotAccount, gotHistory, err := suite.service.GetAccountWithHistory(suite.ctx, 1)

	suite.NoError(err)
	suite.Equal(account, gotAccount)
	suite.Len(gotHistory, 1)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetAccountWithHistory_NotFound() {
	suite.mockTxnRepo.On("FindAccountWithTransactions", suite.ctx, int64(999)).Return(nil, nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.GetAccountWithHistory(suite.ctx, 999)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestProcessTransaction_ZeroAmount() {
	req := dto.CreateTransferRequest{FromAccountID: 1, ToAccountID: 2, Amount: decimal.Zero}

	_, err := suite.service.ProcessTransaction(suite.ctx, req, testPrincipal)

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	// Amount is checked before any account lookup.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransfer")
}

func (suite *LedgerServiceTestSuite) TestProcessTransaction_NegativeAmount() {
	req := dto.CreateTransferRequest{FromAccountID: 1, ToAccountID: 2, Amount: decimal.NewFromInt(-5)}

	_, err := suite.service.ProcessTransaction(suite.ctx, req, testPrincipal)

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *LedgerServiceTestSuite) TestProcessTransaction_SelfTransfer() {
	req := dto.CreateTransferRequest{FromAccountID: 1, ToAccountID: 1, Amount: decimal.NewFromInt(10)}

	_, err := suite.service.ProcessTransaction(suite.ctx, req, testPrincipal)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID")
}

func (suite *LedgerServiceTestSuite) TestProcessTransaction_SourceNotFound() {
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, int64(999)).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateTransferRequest{FromAccountID: 999, ToAccountID: 2, Amount: decimal.NewFromInt(10)}
	_, err := suite.service.ProcessTransaction(suite.ctx, req, testPrincipal)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	// Destination is never looked up once the source is missing.
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "FindAccountByID", 1)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransfer")
}

func (suite *LedgerServiceTestSuite) TestProcessTransaction_DestinationNotFound() {
	from := &domain.Account{AccountID: 1, Owner: "Alice", Balance: decimal.NewFromInt(60)}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, int64(1)).Return(from, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, int64(999)).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateTransferRequest{FromAccountID: 1, ToAccountID: 999, Amount: decimal.NewFromInt(10)}
	_, err := suite.service.ProcessTransaction(suite.ctx, req, testPrincipal)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransfer")
}

func (suite *LedgerServiceTestSuite) TestProcessTransaction_InsufficientFunds() {
	from := &domain.Account{AccountID: 1, Owner: "Alice", Balance: decimal.Zero}
	to := &domain.Account{AccountID: 2, Owner: "Bob", Balance: decimal.Zero}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, int64(1)).Return(from, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, int64(2)).Return(to, nil).Once()
	suite.mockTxnRepo.On("SaveTransfer", suite.ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).Return(nil, apperrors.ErrInsufficientFunds).Once()

	req := dto.CreateTransferRequest{FromAccountID: 1, ToAccountID: 2, Amount: decimal.NewFromInt(50)}
	_, err := suite.service.ProcessTransaction(suite.ctx, req, testPrincipal)

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestProcessTransaction_Success() {
	amount := decimal.NewFromInt(40)
	from := &domain.Account{AccountID: 1, Owner: "Alice", Balance: decimal.NewFromInt(100)}
	to := &domain.Account{AccountID: 2, Owner: "Bob", Balance: decimal.Zero}
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, int64(1)).Return(from, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, int64(2)).Return(to, nil).Once()

	saved := &domain.Transaction{TransactionID: 1, FromAccountID: 1, ToAccountID: 2, Amount: amount, RecordedAt: time.Now().UTC(), CreatedBy: testPrincipal}
	suite.mockTxnRepo.On("SaveTransfer", suite.ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.FromAccountID == 1 && txn.ToAccountID == 2 && txn.Amount.Equal(amount) && txn.CreatedBy == testPrincipal
		}),
		mock.MatchedBy(func(changes map[int64]decimal.Decimal) bool {
			// Debit and credit must mirror each other exactly (conservation).
			return len(changes) == 2 && changes[1].Equal(amount.Neg()) && changes[2].Equal(amount)
		}),
	).Return(saved, nil).Once()

	req := dto.CreateTransferRequest{FromAccountID: 1, ToAccountID: 2, Amount: amount}
	txn, err := suite.service.ProcessTransaction(suite.ctx, req, testPrincipal)

	suite.NoError(err)
	suite.Equal(int64(1), txn.TransactionID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
