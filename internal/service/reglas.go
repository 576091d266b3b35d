package service

import (
	"fmt"

	"clemontstore/internal/apierror"
	"clemontstore/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Business rules shared by the services. Every check is pure: it receives the
// current state plus the proposed change and returns nil or a typed error.

const (
	edadMinimaComprador     = 18
	cantidadMinimaDescuento = 3
)

// porcentajeDescuento is the volume discount applied from 3 units onwards.
var porcentajeDescuento = decimal.NewFromFloat(0.20)

// ValidarNombreCategoria fails with Conflict when the name is already taken.
// existente is the category currently holding the name (nil when free);
// propiaID exempts a category being renamed from matching itself.
func ValidarNombreCategoria(nombre string, existente *model.Categoria, propiaID uuid.UUID) error {
	if existente != nil && existente.ID != propiaID {
		return apierror.Conflict(fmt.Sprintf("Ya existe una categoría con el nombre '%s'", nombre))
	}
	return nil
}

// ValidarNumericosProducto enforces precio ≥ 0 and stock ≥ 0.
func ValidarNumericosProducto(precio decimal.Decimal, stock int) error {
	if precio.IsNegative() {
		return apierror.Validation("el precio no puede ser negativo")
	}
	if stock < 0 {
		return apierror.Validation("el stock no puede ser negativo")
	}
	return nil
}

func ValidarEdadComprador(edad int) error {
	if edad < edadMinimaComprador {
		return apierror.Validation(fmt.Sprintf("el comprador debe ser mayor de %d años", edadMinimaComprador))
	}
	return nil
}

// ValidarStockParaVenta checks the requested quantity against current stock.
// Non-positive quantities are malformed input; exceeding stock is a business
// rule rejection that leaves stock untouched.
func ValidarStockParaVenta(stockActual, cantidad int) error {
	if cantidad <= 0 {
		return apierror.Validation("la cantidad debe ser mayor a cero")
	}
	if cantidad > stockActual {
		return apierror.BusinessRule(fmt.Sprintf(
			"Stock insuficiente. Stock actual: %d. La cantidad solicitada (%d) excede el stock disponible.",
			stockActual, cantidad))
	}
	return nil
}

// CalcularDescuento returns 20% of the subtotal when cantidad reaches the
// volume threshold, zero otherwise.
func CalcularDescuento(cantidad int, subtotal decimal.Decimal) decimal.Decimal {
	if cantidad >= cantidadMinimaDescuento {
		return subtotal.Mul(porcentajeDescuento).Round(2)
	}
	return decimal.Zero
}
