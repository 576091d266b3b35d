package service

import (
	"context"
	"errors"

	"clemontstore/internal/apierror"
	"clemontstore/internal/dto"
	"clemontstore/internal/model"
	"clemontstore/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	RestarStock(ctx context.Context, id uuid.UUID, cantidad int) (*dto.ProductoResponse, error)
}

type productoService struct {
	repo       repository.ProductoRepository
	categorias repository.CategoriaRepository
}

func NewProductoService(repo repository.ProductoRepository, categorias repository.CategoriaRepository) ProductoService {
	return &productoService{repo: repo, categorias: categorias}
}

func mapProducto(p model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Activo:      p.Activo,
		CategoriaID: p.CategoriaID.String(),
	}
	if p.Categoria != nil {
		resp.Categoria = &dto.CategoriaResumen{
			ID:     p.Categoria.ID.String(),
			Nombre: p.Categoria.Nombre,
			Activo: p.Categoria.Activo,
		}
	}
	return resp
}

// categoriaActiva loads the target category and rejects absent or inactive
// ones: a product can only be created under (or moved to) a live category.
func (s *productoService) categoriaActiva(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, err := s.categorias.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("la categoría no existe o está inactiva")
		}
		return nil, err
	}
	if !c.Activo {
		return nil, apierror.NotFound("la categoría no existe o está inactiva")
	}
	return c, nil
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, apierror.Validation("categoria_id inválido")
	}
	categoria, err := s.categoriaActiva(ctx, categoriaID)
	if err != nil {
		return nil, err
	}
	if err := ValidarNumericosProducto(req.Precio, req.Stock); err != nil {
		return nil, err
	}

	p := &model.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Stock:       req.Stock,
		Activo:      true,
		CategoriaID: categoriaID,
	}
	if err := s.repo.Crear(ctx, p); err != nil {
		return nil, err
	}
	p.Categoria = categoria
	resp := mapProducto(*p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}
	resp := mapProducto(*p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		result = append(result, mapProducto(p))
	}
	return result, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}
	if !p.Activo {
		return nil, apierror.NotFound("producto no encontrado")
	}

	precio := p.Precio
	stock := p.Stock
	if req.Precio != nil {
		precio = *req.Precio
	}
	if req.Stock != nil {
		stock = *req.Stock
	}
	if err := ValidarNumericosProducto(precio, stock); err != nil {
		return nil, err
	}

	if req.CategoriaID != nil {
		nuevaCategoriaID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apierror.Validation("categoria_id inválido")
		}
		if nuevaCategoriaID != p.CategoriaID {
			categoria, err := s.categoriaActiva(ctx, nuevaCategoriaID)
			if err != nil {
				return nil, err
			}
			p.CategoriaID = nuevaCategoriaID
			p.Categoria = categoria
		}
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	p.Precio = precio
	p.Stock = stock

	if err := s.repo.Actualizar(ctx, p); err != nil {
		return nil, err
	}
	resp := mapProducto(*p)
	return &resp, nil
}

// Desactivar is idempotent: deactivating an already-inactive product is a
// no-op, matching the original store behavior.
func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("producto no encontrado")
		}
		return err
	}
	return s.repo.Desactivar(ctx, id)
}

// RestarStock decrements stock for shipment loss or a manual adjustment. The
// repository's conditional update is the authority: a concurrent decrement
// that drains the stock between our read and the write surfaces as 0 rows
// affected and is rejected, never oversold.
func (s *productoService) RestarStock(ctx context.Context, id uuid.UUID, cantidad int) (*dto.ProductoResponse, error) {
	if cantidad <= 0 {
		return nil, apierror.Validation("la cantidad a restar debe ser mayor a cero")
	}

	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}
	if !p.Activo {
		return nil, apierror.NotFound("producto no encontrado")
	}
	if err := ValidarStockParaVenta(p.Stock, cantidad); err != nil {
		return nil, err
	}

	rows, err := s.repo.DescontarStock(ctx, id, cantidad)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apierror.BusinessRule("Stock insuficiente.")
	}

	actualizado, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapProducto(*actualizado)
	return &resp, nil
}
