package repository

import (
	"context"

	"clemontstore/internal/model"

	"gorm.io/gorm"
)

// CompraRepository persists the purchase ledger. Compras are append-only:
// there is no update or delete method on purpose.
type CompraRepository interface {
	// Crear runs inside the sale transaction; callers must pass the tx.
	Crear(ctx context.Context, tx *gorm.DB, c *model.Compra) error
	Listar(ctx context.Context) ([]model.Compra, error)
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) Crear(ctx context.Context, tx *gorm.DB, c *model.Compra) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *compraRepo) Listar(ctx context.Context) ([]model.Compra, error) {
	var compras []model.Compra
	err := r.db.WithContext(ctx).Preload("Producto").Order("created_at asc").Find(&compras).Error
	return compras, err
}

func (r *compraRepo) DB() *gorm.DB { return r.db }
