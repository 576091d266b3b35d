package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clemontstore/internal/apierror"
	"clemontstore/internal/dto"
	"clemontstore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The handler tests verify the error-to-status mapping contract:
// Validation→422, Conflict→409, NotFound→404, BusinessRule→400, other→500.

// ── Stub services ─────────────────────────────────────────────────────────────

type stubCategoriaService struct {
	err error
}

func (s *stubCategoriaService) Crear(_ context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	if s.err != nil {
		return dto.CategoriaResponse{}, s.err
	}
	return dto.CategoriaResponse{ID: uuid.New(), Nombre: req.Nombre, Activo: true}, nil
}

func (s *stubCategoriaService) Listar(_ context.Context) ([]dto.CategoriaResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []dto.CategoriaResponse{}, nil
}

func (s *stubCategoriaService) ObtenerConProductos(_ context.Context, _ uuid.UUID) (*dto.CategoriaConProductosResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CategoriaConProductosResponse{}, nil
}

func (s *stubCategoriaService) Actualizar(_ context.Context, _ uuid.UUID, _ dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error) {
	if s.err != nil {
		return dto.CategoriaResponse{}, s.err
	}
	return dto.CategoriaResponse{}, nil
}

func (s *stubCategoriaService) Desactivar(_ context.Context, _ uuid.UUID) error { return s.err }

var _ service.CategoriaService = (*stubCategoriaService)(nil)

type stubCompraService struct {
	err error
}

func (s *stubCompraService) Registrar(_ context.Context, req dto.RegistrarCompraRequest) (*dto.CompraResultadoResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CompraResultadoResponse{
		ID:         uuid.NewString(),
		Mensaje:    "Compra registrada exitosamente",
		TotalPagar: decimal.RequireFromString("24.00"),
	}, nil
}

func (s *stubCompraService) Listar(_ context.Context) ([]dto.CompraResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []dto.CompraResponse{}, nil
}

var _ service.CompraService = (*stubCompraService)(nil)

type stubProductoService struct {
	err error
}

func (s *stubProductoService) respond() (*dto.ProductoResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ProductoResponse{ID: uuid.NewString(), Nombre: "Gaseosa", Stock: 2, Activo: true}, nil
}

func (s *stubProductoService) Crear(_ context.Context, _ dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	return s.respond()
}

func (s *stubProductoService) ObtenerPorID(_ context.Context, _ uuid.UUID) (*dto.ProductoResponse, error) {
	return s.respond()
}

func (s *stubProductoService) Listar(_ context.Context, _ dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []dto.ProductoResponse{}, nil
}

func (s *stubProductoService) Actualizar(_ context.Context, _ uuid.UUID, _ dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	return s.respond()
}

func (s *stubProductoService) Desactivar(_ context.Context, _ uuid.UUID) error { return s.err }

func (s *stubProductoService) RestarStock(_ context.Context, _ uuid.UUID, _ int) (*dto.ProductoResponse, error) {
	return s.respond()
}

var _ service.ProductoService = (*stubProductoService)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func perform(r *gin.Engine, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func newCategoriaRouter(svc service.CategoriaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCategoriasHandler(svc)
	r.POST("/v1/categorias", h.Crear)
	r.GET("/v1/categorias", h.Listar)
	r.PATCH("/v1/categorias/:id", h.Actualizar)
	r.DELETE("/v1/categorias/:id", h.Desactivar)
	return r
}

func newCompraRouter(svc service.CompraService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewComprasHandler(svc)
	r.POST("/v1/compras", h.Registrar)
	r.GET("/v1/compras", h.Listar)
	return r
}

func newProductoRouter(svc service.ProductoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProductosHandler(svc)
	r.POST("/v1/productos", h.Crear)
	r.GET("/v1/productos", h.Listar)
	r.GET("/v1/productos/:id", h.ObtenerPorID)
	r.PATCH("/v1/productos/:id/restar-stock", h.RestarStock)
	return r
}

func validCompra() dto.RegistrarCompraRequest {
	return dto.RegistrarCompraRequest{
		Nombres:           "Ana",
		Apellidos:         "Paredes",
		Edad:              30,
		CorreoElectronico: "ana@example.com",
		MedioPago:         "tarjeta",
		ProductoID:        uuid.NewString(),
		Cantidad:          1,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCategoriaCrearStatus(t *testing.T) {
	r := newCategoriaRouter(&stubCategoriaService{})
	w := perform(r, http.MethodPost, "/v1/categorias", jsonBody(t, dto.CrearCategoriaRequest{Nombre: "Bebidas"}))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCategoriaCrearConflicto(t *testing.T) {
	r := newCategoriaRouter(&stubCategoriaService{err: apierror.Conflict("ya existe")})
	w := perform(r, http.MethodPost, "/v1/categorias", jsonBody(t, dto.CrearCategoriaRequest{Nombre: "Bebidas"}))
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ya existe", resp.Detail)
}

func TestCategoriaCrearNombreCorto(t *testing.T) {
	// "ab" viola min=3 → el validador responde 422 antes de llegar al servicio.
	r := newCategoriaRouter(&stubCategoriaService{})
	w := perform(r, http.MethodPost, "/v1/categorias", jsonBody(t, dto.CrearCategoriaRequest{Nombre: "ab"}))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCategoriaActualizarNoEncontrada(t *testing.T) {
	r := newCategoriaRouter(&stubCategoriaService{err: apierror.NotFound("categoría no encontrada")})
	w := perform(r, http.MethodPatch, "/v1/categorias/"+uuid.NewString(), jsonBody(t, dto.ActualizarCategoriaRequest{}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoriaDesactivarStatus(t *testing.T) {
	r := newCategoriaRouter(&stubCategoriaService{})
	w := perform(r, http.MethodDelete, "/v1/categorias/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCategoriaIDInvalido(t *testing.T) {
	r := newCategoriaRouter(&stubCategoriaService{})
	w := perform(r, http.MethodDelete, "/v1/categorias/no-es-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductoCrearCategoriaInexistente(t *testing.T) {
	r := newProductoRouter(&stubProductoService{err: apierror.NotFound("la categoría no existe o está inactiva")})
	w := perform(r, http.MethodPost, "/v1/productos", jsonBody(t, dto.CrearProductoRequest{
		Nombre:      "Gaseosa",
		Precio:      decimal.RequireFromString("10.00"),
		Stock:       5,
		CategoriaID: uuid.NewString(),
	}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductoListarFiltroInvalido(t *testing.T) {
	// precio_min negativo viola min=0 en el filtro.
	r := newProductoRouter(&stubProductoService{})
	w := perform(r, http.MethodGet, "/v1/productos?precio_min=-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProductoRestarStockInsuficiente(t *testing.T) {
	r := newProductoRouter(&stubProductoService{err: apierror.BusinessRule("Stock insuficiente.")})
	w := perform(r, http.MethodPatch, "/v1/productos/"+uuid.NewString()+"/restar-stock",
		jsonBody(t, dto.RestarStockRequest{Cantidad: 6}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductoRestarStockCantidadCero(t *testing.T) {
	// required falla con cero antes de llegar al servicio.
	r := newProductoRouter(&stubProductoService{})
	w := perform(r, http.MethodPatch, "/v1/productos/"+uuid.NewString()+"/restar-stock",
		jsonBody(t, map[string]any{"cantidad_a_restar": 0}))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProductoObtenerIDInvalido(t *testing.T) {
	r := newProductoRouter(&stubProductoService{})
	w := perform(r, http.MethodGet, "/v1/productos/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompraRegistrarStatus(t *testing.T) {
	r := newCompraRouter(&stubCompraService{})
	w := perform(r, http.MethodPost, "/v1/compras", jsonBody(t, validCompra()))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCompraRegistrarValidacion(t *testing.T) {
	r := newCompraRouter(&stubCompraService{err: apierror.Validation("el comprador debe ser mayor de 18 años")})
	w := perform(r, http.MethodPost, "/v1/compras", jsonBody(t, validCompra()))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCompraRegistrarStockInsuficiente(t *testing.T) {
	r := newCompraRouter(&stubCompraService{err: apierror.BusinessRule("Stock insuficiente.")})
	w := perform(r, http.MethodPost, "/v1/compras", jsonBody(t, validCompra()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompraRegistrarProductoNoEncontrado(t *testing.T) {
	r := newCompraRouter(&stubCompraService{err: apierror.NotFound("producto no encontrado")})
	w := perform(r, http.MethodPost, "/v1/compras", jsonBody(t, validCompra()))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompraRegistrarErrorInterno(t *testing.T) {
	r := newCompraRouter(&stubCompraService{err: assert.AnError})
	w := perform(r, http.MethodPost, "/v1/compras", jsonBody(t, validCompra()))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// El error crudo nunca llega al cliente.
	var resp apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Error interno del servidor", resp.Detail)
}

func TestCompraListarStatus(t *testing.T) {
	r := newCompraRouter(&stubCompraService{})
	w := perform(r, http.MethodGet, "/v1/compras", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
