package repository

import (
	"context"

	"clemontstore/internal/dto"
	"clemontstore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
type ProductoRepository interface {
	Crear(ctx context.Context, p *model.Producto) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	Actualizar(ctx context.Context, p *model.Producto) error
	Desactivar(ctx context.Context, id uuid.UUID) error

	// DescontarStock decrements stock only when the product is active and has
	// at least cantidad units. Returns the number of rows affected: 0 means
	// the guard failed and nothing was written.
	DescontarStock(ctx context.Context, id uuid.UUID, cantidad int) (int64, error)

	// Tx variants run inside transactions opened by the service layer.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int64, error)
	DesactivarPorCategoriaTx(tx *gorm.DB, categoriaID uuid.UUID) error

	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Crear(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).Preload("Categoria").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Listar(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var productos []model.Producto

	q := r.db.WithContext(ctx).Model(&model.Producto{}).Where("activo = true")

	if filter.Stock != nil {
		q = q.Where("stock >= ?", *filter.Stock)
	}
	if filter.PrecioMin != nil {
		q = q.Where("precio >= ?", *filter.PrecioMin)
	}
	if filter.PrecioMax != nil {
		q = q.Where("precio <= ?", *filter.PrecioMax)
	}
	if filter.CategoriaID != "" {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}

	err := q.Order("nombre asc").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Actualizar(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

// The `stock >= ?` guard makes the check-and-decrement atomic: two concurrent
// sales against the last unit cannot both pass, one of them sees 0 rows
// affected and must fail.
func (r *productoRepo) DescontarStock(ctx context.Context, id uuid.UUID, cantidad int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ? AND activo = true AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	return res.RowsAffected, res.Error
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND activo = true AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	return res.RowsAffected, res.Error
}

func (r *productoRepo) DesactivarPorCategoriaTx(tx *gorm.DB, categoriaID uuid.UUID) error {
	return tx.Model(&model.Producto{}).
		Where("categoria_id = ? AND activo = true", categoriaID).
		Update("activo", false).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
