package service

import (
	"context"
	"errors"
	"fmt"

	"clemontstore/internal/apierror"
	"clemontstore/internal/dto"
	"clemontstore/internal/model"
	"clemontstore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompraService registers purchases and exposes the immutable ledger.
type CompraService interface {
	Registrar(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.CompraResultadoResponse, error)
	Listar(ctx context.Context) ([]dto.CompraResponse, error)
}

type compraService struct {
	repo      repository.CompraRepository
	productos repository.ProductoRepository
}

func NewCompraService(repo repository.CompraRepository, productos repository.ProductoRepository) CompraService {
	return &compraService{repo: repo, productos: productos}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Registrar runs the full purchase workflow:
//  1. buyer age check
//  2. resolve the product (must exist and be active)
//  3. quantity vs. stock check
//  4. subtotal / volume discount / total, all in decimal
//  5. one transaction: conditional stock decrement + ledger insert
//
// The decrement's `stock >= cantidad` guard re-checks sufficiency inside the
// transaction, so two concurrent purchases of the last unit cannot both win.
func (s *compraService) Registrar(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.CompraResultadoResponse, error) {
	if err := ValidarEdadComprador(req.Edad); err != nil {
		return nil, err
	}

	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}

	p, err := s.productos.ObtenerPorID(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(fmt.Sprintf("Producto con ID %s no encontrado", req.ProductoID))
		}
		return nil, err
	}
	if !p.Activo {
		return nil, apierror.NotFound(fmt.Sprintf("El producto '%s' está inactivo y no puede venderse", p.Nombre))
	}

	if err := ValidarStockParaVenta(p.Stock, req.Cantidad); err != nil {
		return nil, err
	}

	subtotal := p.Precio.Mul(decimal.NewFromInt(int64(req.Cantidad)))
	descuento := CalcularDescuento(req.Cantidad, subtotal)
	total := subtotal.Sub(descuento)

	compra := model.Compra{
		Nombres:           req.Nombres,
		Apellidos:         req.Apellidos,
		Edad:              req.Edad,
		CorreoElectronico: req.CorreoElectronico,
		MedioPago:         req.MedioPago,
		ProductoID:        productoID,
		Cantidad:          req.Cantidad,
		PrecioUnidad:      p.Precio,
		Subtotal:          subtotal,
		Descuento:         descuento,
		Total:             total,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		rows, err := s.productos.DescontarStockTx(tx, productoID, req.Cantidad)
		if err != nil {
			return err
		}
		if rows == 0 {
			// A concurrent sale drained the stock after our pre-flight check.
			return apierror.BusinessRule("Stock insuficiente.")
		}
		return s.repo.Crear(ctx, tx, &compra)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CompraResultadoResponse{
		ID:                compra.ID.String(),
		Mensaje:           "Compra registrada exitosamente",
		NombreComprador:   fmt.Sprintf("%s %s", req.Nombres, req.Apellidos),
		NombreProducto:    p.Nombre,
		CantidadComprada:  req.Cantidad,
		PrecioUnidad:      p.Precio,
		Subtotal:          subtotal,
		DescuentoAplicado: descuento,
		TotalPagar:        total,
	}, nil
}

func (s *compraService) Listar(ctx context.Context) ([]dto.CompraResponse, error) {
	compras, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CompraResponse, 0, len(compras))
	for _, c := range compras {
		result = append(result, mapCompra(c))
	}
	return result, nil
}

func mapCompra(c model.Compra) dto.CompraResponse {
	nombreProducto := ""
	if c.Producto != nil {
		nombreProducto = c.Producto.Nombre
	}
	return dto.CompraResponse{
		ID:                c.ID.String(),
		Nombres:           c.Nombres,
		Apellidos:         c.Apellidos,
		Edad:              c.Edad,
		CorreoElectronico: c.CorreoElectronico,
		MedioPago:         c.MedioPago,
		ProductoID:        c.ProductoID.String(),
		NombreProducto:    nombreProducto,
		Cantidad:          c.Cantidad,
		PrecioUnidad:      c.PrecioUnidad,
		Subtotal:          c.Subtotal,
		Descuento:         c.Descuento,
		Total:             c.Total,
		CreatedAt:         c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
