package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Joan074/SellPoint/internal/apierror"
	"github.com/Joan074/SellPoint/internal/dto"
	"github.com/Joan074/SellPoint/internal/model"
	"github.com/Joan074/SellPoint/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const precioCacheTTL = 5 * time.Minute

type ProductoService interface {
	CrearProducto(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	ObtenerProducto(ctx context.Context, id int) (*dto.ProductoResponse, error)
	ListarProductos(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	ActualizarProducto(ctx context.Context, id int, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	EliminarProducto(ctx context.Context, id int) error
	ActualizarPrecio(ctx context.Context, id int, precio decimal.Decimal) error
	AjustarStock(ctx context.Context, id int, delta int) (*dto.ProductoResponse, error)
	// ConsultarPrecio resolves a barcode to nombre+precio for the price-check
	// kiosk. Results are cached in Redis for a few minutes.
	ConsultarPrecio(ctx context.Context, codigoBarras string) (*dto.ConsultaPrecioResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	proveedorRepo repository.ProveedorRepository
	rdb           *redis.Client
}

func NewProductoService(
	repo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	proveedorRepo repository.ProveedorRepository,
	rdb *redis.Client,
) ProductoService {
	return &productoService{
		repo:          repo,
		categoriaRepo: categoriaRepo,
		proveedorRepo: proveedorRepo,
		rdb:           rdb,
	}
}

func (s *productoService) CrearProducto(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.Validation("el precio debe ser mayor a cero")
	}
	if _, err := s.categoriaRepo.FindByID(ctx, req.CategoriaID); err != nil {
		return nil, notFoundOr(err, "categoria no encontrada")
	}
	if _, err := s.proveedorRepo.FindByID(ctx, req.ProveedorID); err != nil {
		return nil, notFoundOr(err, "proveedor no encontrado")
	}

	p := &model.Producto{
		Nombre:       req.Nombre,
		Precio:       req.Precio,
		Stock:        req.Stock,
		CategoriaID:  req.CategoriaID,
		ProveedorID:  req.ProveedorID,
		CodigoBarras: req.CodigoBarras,
		ImagenURL:    req.ImagenURL,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Storage("error creando producto", err)
	}
	return s.ObtenerProducto(ctx, p.ID)
}

func (s *productoService) ObtenerProducto(ctx context.Context, id int) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "producto no encontrado")
	}
	resp := construirProductoResponse(p)
	return &resp, nil
}

func (s *productoService) ListarProductos(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Storage("error listando productos", err)
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, construirProductoResponse(&productos[i]))
	}
	return out, nil
}

func (s *productoService) ActualizarProducto(ctx context.Context, id int, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "producto no encontrado")
	}
	if req.Precio.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.Validation("el precio debe ser mayor a cero")
	}
	if _, err := s.categoriaRepo.FindByID(ctx, req.CategoriaID); err != nil {
		return nil, notFoundOr(err, "categoria no encontrada")
	}
	if _, err := s.proveedorRepo.FindByID(ctx, req.ProveedorID); err != nil {
		return nil, notFoundOr(err, "proveedor no encontrado")
	}

	p.Nombre = req.Nombre
	p.Precio = req.Precio
	p.Stock = req.Stock
	p.CategoriaID = req.CategoriaID
	p.ProveedorID = req.ProveedorID
	p.CodigoBarras = req.CodigoBarras
	p.ImagenURL = req.ImagenURL
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Storage("error actualizando producto", err)
	}
	s.invalidarCachePrecio(ctx, p.CodigoBarras)
	return s.ObtenerProducto(ctx, id)
}

func (s *productoService) EliminarProducto(ctx context.Context, id int) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "producto no encontrado")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.Storage("error eliminando producto", err)
	}
	s.invalidarCachePrecio(ctx, p.CodigoBarras)
	return nil
}

func (s *productoService) ActualizarPrecio(ctx context.Context, id int, precio decimal.Decimal) error {
	if precio.LessThanOrEqual(decimal.Zero) {
		return apierror.Validation("el precio debe ser mayor a cero")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "producto no encontrado")
	}
	if err := s.repo.ActualizarPrecio(ctx, id, precio); err != nil {
		return apierror.Storage("error actualizando precio", err)
	}
	s.invalidarCachePrecio(ctx, p.CodigoBarras)
	return nil
}

func (s *productoService) AjustarStock(ctx context.Context, id int, delta int) (*dto.ProductoResponse, error) {
	if delta == 0 {
		return nil, apierror.Validation("el ajuste de stock no puede ser cero")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "producto no encontrado")
	}
	if err := s.repo.AjustarStock(ctx, id, delta); err != nil {
		return nil, apierror.Storage("error ajustando stock", err)
	}
	return s.ObtenerProducto(ctx, id)
}

func (s *productoService) ConsultarPrecio(ctx context.Context, codigoBarras string) (*dto.ConsultaPrecioResponse, error) {
	if codigoBarras == "" {
		return nil, apierror.Validation("codigo de barras requerido")
	}

	cacheKey := "precio:" + codigoBarras
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByBarcode(ctx, codigoBarras)
	if err != nil {
		return nil, notFoundOr(err, "producto no encontrado")
	}

	resp := &dto.ConsultaPrecioResponse{
		Nombre:       p.Nombre,
		Precio:       p.Precio,
		CodigoBarras: codigoBarras,
	}
	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, precioCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("codigo", codigoBarras).Msg("consulta_precios: cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *productoService) invalidarCachePrecio(ctx context.Context, codigoBarras *string) {
	if s.rdb == nil || codigoBarras == nil || *codigoBarras == "" {
		return
	}
	if err := s.rdb.Del(ctx, "precio:"+*codigoBarras).Err(); err != nil {
		log.Warn().Err(err).Str("codigo", *codigoBarras).Msg("consulta_precios: cache invalidation failed")
	}
}

func construirProductoResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Precio:       p.Precio,
		Stock:        p.Stock,
		CodigoBarras: p.CodigoBarras,
		ImagenURL:    p.ImagenURL,
		Activo:       p.Activo,
	}
	if p.Categoria != nil {
		resp.Categoria = dto.CategoriaSimpleResponse{ID: p.Categoria.ID, Nombre: p.Categoria.Nombre}
	}
	if p.Proveedor != nil {
		resp.Proveedor = dto.ProveedorSimpleResponse{ID: p.Proveedor.ID, Nombre: p.Proveedor.Nombre}
	}
	return resp
}
