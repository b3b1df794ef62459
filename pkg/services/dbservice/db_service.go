package dbservice

import (
	"gorm.io/gorm"
)

type DatabaseService struct {
	db *gorm.DB
}

func New(db *gorm.DB) *DatabaseService {
	return &DatabaseService{
		db: db,
	}
}

// Transaction runs fn with a DatabaseService bound to the transaction,
// committing on nil and rolling back on error.
func (s *DatabaseService) Transaction(fn func(txs *DatabaseService) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&DatabaseService{db: tx})
	})
}
