package service

import (
	"context"

	"github.com/Joan074/SellPoint/internal/apierror"
	"github.com/Joan074/SellPoint/internal/dto"
	"github.com/Joan074/SellPoint/internal/model"
	"github.com/Joan074/SellPoint/internal/repository"
)

// CatalogoService groups the low-churn CRUD of categorias, proveedores y
// clientes. None of it touches stock or sales.
type CatalogoService interface {
	CrearCategoria(ctx context.Context, req dto.CategoriaRequest) (*dto.CategoriaSimpleResponse, error)
	ListarCategorias(ctx context.Context) ([]dto.CategoriaSimpleResponse, error)
	EliminarCategoria(ctx context.Context, id int) error

	CrearProveedor(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error)
	ListarProveedores(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error)
	ActualizarProveedor(ctx context.Context, id int, req dto.ProveedorRequest) (*dto.ProveedorResponse, error)
	EliminarProveedor(ctx context.Context, id int) error

	CrearCliente(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	ListarClientes(ctx context.Context) ([]dto.ClienteResponse, error)
	ActualizarCliente(ctx context.Context, id int, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	EliminarCliente(ctx context.Context, id int) error
}

type catalogoService struct {
	categoriaRepo repository.CategoriaRepository
	proveedorRepo repository.ProveedorRepository
	clienteRepo   repository.ClienteRepository
}

func NewCatalogoService(
	categoriaRepo repository.CategoriaRepository,
	proveedorRepo repository.ProveedorRepository,
	clienteRepo repository.ClienteRepository,
) CatalogoService {
	return &catalogoService{
		categoriaRepo: categoriaRepo,
		proveedorRepo: proveedorRepo,
		clienteRepo:   clienteRepo,
	}
}

// ── Categorias ────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearCategoria(ctx context.Context, req dto.CategoriaRequest) (*dto.CategoriaSimpleResponse, error) {
	if _, err := s.categoriaRepo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, apierror.Conflict("la categoria ya existe")
	}
	c := &model.Categoria{Nombre: req.Nombre}
	if err := s.categoriaRepo.Create(ctx, c); err != nil {
		return nil, apierror.Storage("error creando categoria", err)
	}
	return &dto.CategoriaSimpleResponse{ID: c.ID, Nombre: c.Nombre}, nil
}

func (s *catalogoService) ListarCategorias(ctx context.Context) ([]dto.CategoriaSimpleResponse, error) {
	categorias, err := s.categoriaRepo.List(ctx)
	if err != nil {
		return nil, apierror.Storage("error listando categorias", err)
	}
	out := make([]dto.CategoriaSimpleResponse, 0, len(categorias))
	for _, c := range categorias {
		out = append(out, dto.CategoriaSimpleResponse{ID: c.ID, Nombre: c.Nombre})
	}
	return out, nil
}

func (s *catalogoService) EliminarCategoria(ctx context.Context, id int) error {
	if _, err := s.categoriaRepo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "categoria no encontrada")
	}
	if err := s.categoriaRepo.Delete(ctx, id); err != nil {
		return apierror.Storage("error eliminando categoria", err)
	}
	return nil
}

// ── Proveedores ───────────────────────────────────────────────────────────────

func (s *catalogoService) CrearProveedor(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		Nombre:           req.Nombre,
		ContactoNombre:   req.ContactoNombre,
		ContactoEmail:    req.ContactoEmail,
		ContactoTelefono: req.ContactoTelefono,
		Direccion:        req.Direccion,
		Activo:           true,
	}
	if err := s.proveedorRepo.Create(ctx, p); err != nil {
		return nil, apierror.Storage("error creando proveedor", err)
	}
	resp := construirProveedorResponse(p)
	return &resp, nil
}

func (s *catalogoService) ListarProveedores(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.proveedorRepo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, apierror.Storage("error listando proveedores", err)
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, construirProveedorResponse(&proveedores[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarProveedor(ctx context.Context, id int, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.proveedorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "proveedor no encontrado")
	}
	p.Nombre = req.Nombre
	p.ContactoNombre = req.ContactoNombre
	p.ContactoEmail = req.ContactoEmail
	p.ContactoTelefono = req.ContactoTelefono
	p.Direccion = req.Direccion
	if err := s.proveedorRepo.Update(ctx, p); err != nil {
		return nil, apierror.Storage("error actualizando proveedor", err)
	}
	resp := construirProveedorResponse(p)
	return &resp, nil
}

func (s *catalogoService) EliminarProveedor(ctx context.Context, id int) error {
	if _, err := s.proveedorRepo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "proveedor no encontrado")
	}
	if err := s.proveedorRepo.SoftDelete(ctx, id); err != nil {
		return apierror.Storage("error eliminando proveedor", err)
	}
	return nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearCliente(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{Nombre: req.Nombre, Telefono: req.Telefono}
	if err := s.clienteRepo.Create(ctx, c); err != nil {
		return nil, apierror.Storage("error creando cliente", err)
	}
	return &dto.ClienteResponse{ID: c.ID, Nombre: c.Nombre, Telefono: c.Telefono}, nil
}

func (s *catalogoService) ListarClientes(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.clienteRepo.List(ctx)
	if err != nil {
		return nil, apierror.Storage("error listando clientes", err)
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, dto.ClienteResponse{ID: c.ID, Nombre: c.Nombre, Telefono: c.Telefono})
	}
	return out, nil
}

func (s *catalogoService) ActualizarCliente(ctx context.Context, id int, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.clienteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "cliente no encontrado")
	}
	c.Nombre = req.Nombre
	c.Telefono = req.Telefono
	if err := s.clienteRepo.Update(ctx, c); err != nil {
		return nil, apierror.Storage("error actualizando cliente", err)
	}
	return &dto.ClienteResponse{ID: c.ID, Nombre: c.Nombre, Telefono: c.Telefono}, nil
}

func (s *catalogoService) EliminarCliente(ctx context.Context, id int) error {
	if _, err := s.clienteRepo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "cliente no encontrado")
	}
	if err := s.clienteRepo.Delete(ctx, id); err != nil {
		return apierror.Storage("error eliminando cliente", err)
	}
	return nil
}

func construirProveedorResponse(p *model.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:               p.ID,
		Nombre:           p.Nombre,
		ContactoNombre:   p.ContactoNombre,
		ContactoEmail:    p.ContactoEmail,
		ContactoTelefono: p.ContactoTelefono,
		Direccion:        p.Direccion,
		Activo:           p.Activo,
	}
}
