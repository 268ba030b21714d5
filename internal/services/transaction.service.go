package services

import (
	"context"
	"pulse360/internal/database"
	"pulse360/internal/logger"

	"gorm.io/gorm"
)

type txContextKey struct{}

// GetTransaction returns the ambient transaction placed in the context by
// TransactionService.Execute, if any. Repositories call this so the same code
// path works inside and outside a transaction.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}

func WithTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside a single transaction. The transaction handle rides
// the context so every repository call within fn shares the same connection
// lease. Any error from fn rolls the whole transaction back.
func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	log := s.log.Function("Execute")

	tx := s.db.SQLWithContext(ctx).Begin()
	if tx.Error != nil {
		return log.Err("failed to begin transaction", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(WithTransaction(ctx, tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			log.Er("failed to roll back transaction", rbErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return log.Err("failed to commit transaction", err)
	}

	return nil
}
