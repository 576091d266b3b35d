package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is an append-only ledger entry recording a purchase. Rows are never
// updated or deleted; the computed amounts are frozen at registration time so
// later price changes do not rewrite history.
type Compra struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombres           string          `gorm:"not null"`
	Apellidos         string          `gorm:"not null"`
	Edad              int             `gorm:"not null"`
	CorreoElectronico string          `gorm:"index;not null"`
	MedioPago         string          `gorm:"not null"`
	ProductoID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cantidad          int             `gorm:"not null"`
	PrecioUnidad      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Descuento         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt         time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Compra) TableName() string { return "compras" }
