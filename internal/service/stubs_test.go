package service

import (
	"context"
	"strings"
	"time"

	"clemontstore/internal/dto"
	"clemontstore/internal/model"
	"clemontstore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs shared by the service tests. They return copies
// so a failed service call can never leak a half-applied mutation into the
// "database".

// ── stubCategoriaRepo ─────────────────────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
	productos  *stubProductoRepo // for ObtenerConProductos
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.categorias[c.ID] = &cp
	return nil
}

func (r *stubCategoriaRepo) ListarActivas(_ context.Context) ([]model.Categoria, error) {
	var list []model.Categoria
	for _, c := range r.categorias {
		if c.Activo {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoriaRepo) ObtenerConProductos(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	if r.productos != nil {
		for _, p := range r.productos.productos {
			if p.CategoriaID == id {
				cp.Productos = append(cp.Productos, *p)
			}
		}
	}
	return &cp, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if strings.EqualFold(c.Nombre, nombre) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	cp := *c
	r.categorias[c.ID] = &cp
	return nil
}

func (r *stubCategoriaRepo) DesactivarTx(_ *gorm.DB, id uuid.UUID) error {
	if c, ok := r.categorias[id]; ok {
		c.Activo = false
	}
	return nil
}

func (r *stubCategoriaRepo) DB() *gorm.DB { return nil }

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── stubProductoRepo ──────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos  map[uuid.UUID]*model.Producto
	categorias *stubCategoriaRepo // for the Categoria preload

	// drainBeforeDecrement simulates a concurrent sale winning the race
	// between the pre-flight stock check and the transactional decrement.
	drainBeforeDecrement bool
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Crear(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	cp.Categoria = nil
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	if r.categorias != nil {
		if c, ok := r.categorias.categorias[p.CategoriaID]; ok {
			ccp := *c
			cp.Categoria = &ccp
		}
	}
	return &cp, nil
}

func (r *stubProductoRepo) Listar(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var list []model.Producto
	for _, p := range r.productos {
		if !p.Activo {
			continue
		}
		if filter.Stock != nil && p.Stock < *filter.Stock {
			continue
		}
		if filter.PrecioMin != nil && p.Precio.LessThan(decimal.NewFromFloat(*filter.PrecioMin)) {
			continue
		}
		if filter.PrecioMax != nil && p.Precio.GreaterThan(decimal.NewFromFloat(*filter.PrecioMax)) {
			continue
		}
		if filter.CategoriaID != "" && p.CategoriaID.String() != filter.CategoriaID {
			continue
		}
		list = append(list, *p)
	}
	return list, nil
}

func (r *stubProductoRepo) Actualizar(_ context.Context, p *model.Producto) error {
	cp := *p
	cp.Categoria = nil
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) descontar(id uuid.UUID, cantidad int) (int64, error) {
	p, ok := r.productos[id]
	if !ok || !p.Activo {
		return 0, nil
	}
	if r.drainBeforeDecrement {
		p.Stock = 0
		r.drainBeforeDecrement = false
	}
	if p.Stock < cantidad {
		return 0, nil
	}
	p.Stock -= cantidad
	return 1, nil
}

func (r *stubProductoRepo) DescontarStock(_ context.Context, id uuid.UUID, cantidad int) (int64, error) {
	return r.descontar(id, cantidad)
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	return r.descontar(id, cantidad)
}

func (r *stubProductoRepo) DesactivarPorCategoriaTx(_ *gorm.DB, categoriaID uuid.UUID) error {
	for _, p := range r.productos {
		if p.CategoriaID == categoriaID && p.Activo {
			p.Activo = false
		}
	}
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── stubCompraRepo ────────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras   []*model.Compra
	productos *stubProductoRepo // for the Producto preload
}

func newStubCompraRepo() *stubCompraRepo { return &stubCompraRepo{} }

func (r *stubCompraRepo) Crear(_ context.Context, _ *gorm.DB, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	cp := *c
	r.compras = append(r.compras, &cp)
	return nil
}

func (r *stubCompraRepo) Listar(_ context.Context) ([]model.Compra, error) {
	list := make([]model.Compra, 0, len(r.compras))
	for _, c := range r.compras {
		cp := *c
		if r.productos != nil {
			if p, ok := r.productos.productos[c.ProductoID]; ok {
				pcp := *p
				cp.Producto = &pcp
			}
		}
		list = append(list, cp)
	}
	return list, nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)
