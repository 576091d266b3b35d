package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=3,max=100"`
	Descripcion *string         `json:"descripcion"  validate:"omitempty,max=500"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	Stock       int             `json:"stock"        validate:"min=0"`
	CategoriaID string          `json:"categoria_id" validate:"required,uuid"`
}

// ActualizarProductoRequest patches mutable fields; nil = leave untouched.
// A category move requires the target category to exist and be active.
type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=3,max=100"`
	Descripcion *string          `json:"descripcion"  validate:"omitempty,max=500"`
	Precio      *decimal.Decimal `json:"precio"       validate:"omitempty,min=0"`
	Stock       *int             `json:"stock"        validate:"omitempty,min=0"`
	CategoriaID *string          `json:"categoria_id" validate:"omitempty,uuid"`
}

type RestarStockRequest struct {
	Cantidad int `json:"cantidad_a_restar" validate:"required,gt=0"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// ProductoFilter holds the optional listing bounds. Absent field = no
// constraint; present fields are AND-combined by the repository.
type ProductoFilter struct {
	Stock       *int     `form:"stock"        validate:"omitempty,min=0"`
	PrecioMin   *float64 `form:"precio_min"   validate:"omitempty,min=0"`
	PrecioMax   *float64 `form:"precio_max"   validate:"omitempty,min=0"`
	CategoriaID string   `form:"categoria_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string            `json:"id"`
	Nombre      string            `json:"nombre"`
	Descripcion *string           `json:"descripcion,omitempty"`
	Precio      decimal.Decimal   `json:"precio"`
	Stock       int               `json:"stock"`
	Activo      bool              `json:"activo"`
	CategoriaID string            `json:"categoria_id"`
	Categoria   *CategoriaResumen `json:"categoria,omitempty"`
}

// CategoriaResumen is the owning category's summary embedded in product reads.
type CategoriaResumen struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}
