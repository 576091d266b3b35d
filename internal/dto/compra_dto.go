package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarCompraRequest struct {
	Nombres           string `json:"nombres"            validate:"required,min=2,max=50"`
	Apellidos         string `json:"apellidos"          validate:"required,min=2,max=50"`
	Edad              int    `json:"edad"               validate:"required"`
	CorreoElectronico string `json:"correo_electronico" validate:"required,email"`
	MedioPago         string `json:"medio_pago"         validate:"required,min=3,max=50"`
	ProductoID        string `json:"producto_id"        validate:"required,uuid"`
	Cantidad          int    `json:"cantidad_unidades"  validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CompraResultadoResponse is the detailed breakdown returned after a
// successful purchase registration.
type CompraResultadoResponse struct {
	ID                string          `json:"id"`
	Mensaje           string          `json:"mensaje"`
	NombreComprador   string          `json:"nombre_comprador"`
	NombreProducto    string          `json:"nombre_producto"`
	CantidadComprada  int             `json:"cantidad_comprada"`
	PrecioUnidad      decimal.Decimal `json:"precio_unidad"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	DescuentoAplicado decimal.Decimal `json:"descuento_aplicado"`
	TotalPagar        decimal.Decimal `json:"total_a_pagar"`
}

// CompraResponse is a ledger entry as returned by the history listing.
type CompraResponse struct {
	ID                string          `json:"id"`
	Nombres           string          `json:"nombres"`
	Apellidos         string          `json:"apellidos"`
	Edad              int             `json:"edad"`
	CorreoElectronico string          `json:"correo_electronico"`
	MedioPago         string          `json:"medio_pago"`
	ProductoID        string          `json:"producto_id"`
	NombreProducto    string          `json:"nombre_producto,omitempty"`
	Cantidad          int             `json:"cantidad_unidades"`
	PrecioUnidad      decimal.Decimal `json:"precio_unidad"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Descuento         decimal.Decimal `json:"descuento"`
	Total             decimal.Decimal `json:"total"`
	CreatedAt         string          `json:"created_at"`
}
