package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner runs a function inside a single database transaction. Repositories
// rebind to the transaction handle through their WithTx methods.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type GormTxRunner struct {
	DB *gorm.DB
}

func (r GormTxRunner) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.DB.WithContext(ctx).Transaction(fn)
}
