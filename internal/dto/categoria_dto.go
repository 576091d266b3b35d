package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=3,max=50"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
}

// ActualizarCategoriaRequest is a partial update: nil fields are left
// untouched. Activo is deliberately not patchable: deactivation goes through
// DELETE and reactivation does not exist.
type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=3,max=50"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoriaResponse struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	Activo      bool      `json:"activo"`
}

// CategoriaConProductosResponse is the detail view: the category plus every
// product it owns, active or not (audit read).
type CategoriaConProductosResponse struct {
	CategoriaResponse
	Productos []ProductoResponse `json:"productos"`
}
