package repositories

import (
	"gorm.io/gorm"
)

// TxRepos bundles the repositories a checkout needs, all bound to the
// same transaction.
type TxRepos struct {
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

// TxManager runs a unit of work atomically. The callback's repositories
// share one transaction; returning an error rolls everything back.
type TxManager interface {
	WithinTransaction(fn func(r TxRepos) error) error
}

// GORMTxManager implements TxManager over a gorm.DB.
type GORMTxManager struct {
	db *gorm.DB
}

// NewGORMTxManager creates a new instance of GORMTxManager.
func NewGORMTxManager(db *gorm.DB) *GORMTxManager {
	return &GORMTxManager{
		db: db,
	}
}

// WithinTransaction opens a database transaction, hands transaction-bound
// repositories to fn, and commits on a nil return. Any error (or panic)
// aborts the transaction. The callback's error is returned as-is, so
// business errors keep their message for the client-facing layer.
func (m *GORMTxManager) WithinTransaction(fn func(r TxRepos) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(TxRepos{
			Products: NewGORMProductRepository(tx),
			Carts:    NewGORMCartRepository(tx),
			Orders:   NewGORMOrderRepository(tx),
		})
	})
}

// MockTxManager runs the callback against fixed repositories without a
// real transaction. Intended for service tests over mock repositories.
type MockTxManager struct {
	Repos TxRepos
}

// NewMockTxManager creates a new instance of MockTxManager.
func NewMockTxManager(repos TxRepos) *MockTxManager {
	return &MockTxManager{Repos: repos}
}

// WithinTransaction invokes fn directly with the configured repositories.
func (m *MockTxManager) WithinTransaction(fn func(r TxRepos) error) error {
	return fn(m.Repos)
}
