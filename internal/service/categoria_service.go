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

// CategoriaService defines business operations for product categories.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	ObtenerConProductos(ctx context.Context, id uuid.UUID) (*dto.CategoriaConProductosResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo      repository.CategoriaRepository
	productos repository.ProductoRepository
}

func NewCategoriaService(repo repository.CategoriaRepository, productos repository.ProductoRepository) CategoriaService {
	return &categoriaService{repo: repo, productos: productos}
}

// mapCategoria converts a model to a DTO response.
func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
	}
}

// buscarPorNombre returns the category holding nombre, or nil when free.
func (s *categoriaService) buscarPorNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	existente, err := s.repo.ObtenerPorNombre(ctx, nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return existente, nil
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	existente, err := s.buscarPorNombre(ctx, req.Nombre)
	if err != nil {
		return dto.CategoriaResponse{}, err
	}
	if err := ValidarNombreCategoria(req.Nombre, existente, uuid.Nil); err != nil {
		return dto.CategoriaResponse{}, err
	}

	c := &model.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.repo.Crear(ctx, c); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.ListarActivas(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}

func (s *categoriaService) ObtenerConProductos(ctx context.Context, id uuid.UUID) (*dto.CategoriaConProductosResponse, error) {
	c, err := s.repo.ObtenerConProductos(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoría no encontrada")
		}
		return nil, err
	}

	resp := &dto.CategoriaConProductosResponse{
		CategoriaResponse: mapCategoria(*c),
		Productos:         make([]dto.ProductoResponse, 0, len(c.Productos)),
	}
	for _, p := range c.Productos {
		resp.Productos = append(resp.Productos, mapProducto(p))
	}
	return resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoriaResponse{}, apierror.NotFound("categoría no encontrada")
		}
		return dto.CategoriaResponse{}, err
	}
	if !c.Activo {
		// Inactive is terminal for mutations.
		return dto.CategoriaResponse{}, apierror.NotFound("categoría no encontrada")
	}

	if req.Nombre != nil && *req.Nombre != c.Nombre {
		existente, err := s.buscarPorNombre(ctx, *req.Nombre)
		if err != nil {
			return dto.CategoriaResponse{}, err
		}
		if err := ValidarNombreCategoria(*req.Nombre, existente, id); err != nil {
			return dto.CategoriaResponse{}, err
		}
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}

	if err := s.repo.Actualizar(ctx, c); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return mapCategoria(*c), nil
}

// Desactivar soft-deletes the category and every active product it owns in a
// single transaction, so no reader ever observes an active product under an
// inactive category. An already-inactive category reports NotFound: there is
// no observable state left to change.
func (s *categoriaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("categoría no encontrada")
		}
		return err
	}
	if !c.Activo {
		return apierror.NotFound("categoría no encontrada")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DesactivarTx(tx, id); err != nil {
			return err
		}
		return s.productos.DesactivarPorCategoriaTx(tx, id)
	})
}
