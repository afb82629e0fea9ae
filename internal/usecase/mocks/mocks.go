package mocks

import (
	"context"
	"sync"

	"github.com/iho/gotransfers/internal/domain"
	"github.com/shopspring/decimal"
)

// MockAccountGateway is a mock implementation of AccountGateway.
type MockAccountGateway struct {
	mu       sync.RWMutex
	accounts map[string]*domain.AccountSnapshot
	byClient map[string][]domain.AccountSnapshot
	balances map[string]decimal.Decimal

	GetAccountFunc          func(ctx context.Context, accountNumber string) (*domain.AccountSnapshot, error)
	GetAccountsByClientFunc func(ctx context.Context, clientID string) ([]domain.AccountSnapshot, error)
	GetBalanceFunc          func(ctx context.Context, accountNumber string) (decimal.Decimal, error)
	UpdateBalanceFunc       func(ctx context.Context, accountNumber string, change domain.BalanceChange) error

	ChangesSent []domain.BalanceChange
}

func NewMockAccountGateway() *MockAccountGateway {
	return &MockAccountGateway{
		accounts: make(map[string]*domain.AccountSnapshot),
		byClient: make(map[string][]domain.AccountSnapshot),
		balances: make(map[string]decimal.Decimal),
	}
}

// AddAccount seeds the gateway with an account snapshot reachable by number
// and by owner.
func (m *MockAccountGateway) AddAccount(account domain.AccountSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.AccountNumber] = &account
	m.byClient[account.ClientID] = append(m.byClient[account.ClientID], account)
	m.balances[account.AccountNumber] = account.Balance
}

func (m *MockAccountGateway) GetAccount(ctx context.Context, accountNumber string) (*domain.AccountSnapshot, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, accountNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[accountNumber]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountGateway) GetAccountsByClient(ctx context.Context, clientID string) ([]domain.AccountSnapshot, error) {
	if m.GetAccountsByClientFunc != nil {
		return m.GetAccountsByClientFunc(ctx, clientID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if accs, ok := m.byClient[clientID]; ok {
		return accs, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountGateway) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, accountNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if bal, ok := m.balances[accountNumber]; ok {
		return bal, nil
	}
	return decimal.Zero, domain.ErrAccountNotFound
}

func (m *MockAccountGateway) UpdateBalance(ctx context.Context, accountNumber string, change domain.BalanceChange) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, accountNumber, change)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bal, ok := m.balances[accountNumber]
	if !ok {
		return domain.ErrAccountNotFound
	}
	switch change.Kind {
	case domain.OperationDebit:
		m.balances[accountNumber] = bal.Sub(change.Amount)
	case domain.OperationCredit:
		m.balances[accountNumber] = bal.Add(change.Amount)
	}
	m.ChangesSent = append(m.ChangesSent, change)
	return nil
}

// Balance returns the current mock balance for assertions.
func (m *MockAccountGateway) Balance(accountNumber string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[accountNumber]
}

// MockUserGateway is a mock implementation of UserGateway.
type MockUserGateway struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byPhone map[string]*domain.User

	GetUserByIDFunc    func(ctx context.Context, clientID string) (*domain.User, error)
	GetUserByPhoneFunc func(ctx context.Context, phoneNumber string) (*domain.User, error)
}

func NewMockUserGateway() *MockUserGateway {
	return &MockUserGateway{
		byID:    make(map[string]*domain.User),
		byPhone: make(map[string]*domain.User),
	}
}

func (m *MockUserGateway) AddUser(user domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[user.ID] = &user
	m.byPhone[user.PhoneNumber] = &user
}

func (m *MockUserGateway) GetUserByID(ctx context.Context, clientID string) (*domain.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, clientID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.byID[clientID]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserGateway) GetUserByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	if m.GetUserByPhoneFunc != nil {
		return m.GetUserByPhoneFunc(ctx, phoneNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.byPhone[phoneNumber]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

// FixedRateSource is a RateSource with a static rate table.
type FixedRateSource struct {
	Rates map[string]decimal.Decimal
}

func NewFixedRateSource(rates map[string]decimal.Decimal) *FixedRateSource {
	return &FixedRateSource{Rates: rates}
}

func (s *FixedRateSource) Rate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	if r, ok := s.Rates[currencyCode]; ok {
		return r, nil
	}
	return decimal.Zero, domain.ErrRateUnavailable
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc  func(ctx context.Context, transfer *domain.Transfer) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{transfers: make(map[string]*domain.Transfer)}
}

func (m *MockTransferRepository) Create(ctx context.Context, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[transfer.ID] = transfer
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

// Count returns the number of stored transfers.
func (m *MockTransferRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transfers)
}

// MockEventPublisher is a mock implementation of EventPublisher.
type MockEventPublisher struct {
	mu        sync.Mutex
	Published []*domain.TransferEvent

	PublishFunc func(ctx context.Context, event *domain.TransferEvent) error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *domain.TransferEvent) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, event)
	return nil
}

// PublishedCount returns how many events were accepted.
func (m *MockEventPublisher) PublishedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Published)
}

// MockIDGenerator is a mock implementation of IDGenerator returning a fixed
// identifier.
type MockIDGenerator struct {
	NextID string
}

func NewMockIDGenerator(id string) *MockIDGenerator {
	return &MockIDGenerator{NextID: id}
}

func (m *MockIDGenerator) Generate() string {
	return m.NextID
}
