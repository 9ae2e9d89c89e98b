package service

import (
	"context"
	"time"

	"github.com/Joan074/SellPoint/internal/apierror"
	"github.com/Joan074/SellPoint/internal/config"
	"github.com/Joan074/SellPoint/internal/dto"
	"github.com/Joan074/SellPoint/internal/model"
	"github.com/Joan074/SellPoint/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	EmpleadoID int    `json:"empleado_id"`
	Usuario    string `json:"usuario"`
	Rol        string `json:"rol"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Login verifies credentials, issues a JWT and persists it so logout and
	// the expiration sweeper can revoke it server-side.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	CrearEmpleado(ctx context.Context, req dto.EmpleadoRequest) (*dto.EmpleadoResponse, error)
	ListarEmpleados(ctx context.Context) ([]dto.EmpleadoResponse, error)
	EliminarEmpleado(ctx context.Context, id int) error
}

type authService struct {
	empleadoRepo repository.EmpleadoRepository
	tokenRepo    repository.TokenRepository
	cfg          *config.Config
}

func NewAuthService(empleadoRepo repository.EmpleadoRepository, tokenRepo repository.TokenRepository, cfg *config.Config) AuthService {
	return &authService{empleadoRepo: empleadoRepo, tokenRepo: tokenRepo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	empleado, err := s.empleadoRepo.FindByUsuario(ctx, req.Usuario)
	if err != nil {
		// Same message for unknown user and wrong password
		return nil, apierror.Unauthorized("credenciales invalidas")
	}
	if bcrypt.CompareHashAndPassword([]byte(empleado.PasswordHash), []byte(req.Contrasena)) != nil {
		return nil, apierror.Unauthorized("credenciales invalidas")
	}

	ahora := time.Now()
	expiracion := ahora.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)

	claims := Claims{
		EmpleadoID: empleado.ID,
		Usuario:    empleado.Usuario,
		Rol:        empleado.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{s.cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(ahora),
			ExpiresAt: jwt.NewNumericDate(expiracion),
		},
	}
	firmado, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, apierror.Storage("error firmando token", err)
	}

	if err := s.tokenRepo.Guardar(ctx, &model.Token{
		EmpleadoID: empleado.ID,
		Token:      firmado,
		CreadoEn:   ahora,
		Expiracion: expiracion,
	}); err != nil {
		return nil, apierror.Storage("error persistiendo token", err)
	}

	log.Info().Str("usuario", empleado.Usuario).Str("rol", empleado.Rol).Msg("login exitoso")

	return &dto.TokenResponse{
		Token:      firmado,
		Expiracion: expiracion.Format(time.RFC3339),
		Empleado: dto.EmpleadoResponse{
			ID:      empleado.ID,
			Nombre:  empleado.Nombre,
			Usuario: empleado.Usuario,
			Rol:     empleado.Rol,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apierror.Unauthorized("token requerido")
	}
	if err := s.tokenRepo.Eliminar(ctx, token); err != nil {
		return apierror.Storage("error eliminando token", err)
	}
	return nil
}

func (s *authService) CrearEmpleado(ctx context.Context, req dto.EmpleadoRequest) (*dto.EmpleadoResponse, error) {
	if _, err := s.empleadoRepo.FindByUsuario(ctx, req.Usuario); err == nil {
		return nil, apierror.Conflict("el usuario ya existe")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierror.Storage("error generando hash", err)
	}
	empleado := &model.Empleado{
		Nombre:       req.Nombre,
		Usuario:      req.Usuario,
		PasswordHash: string(hash),
		Rol:          req.Rol,
	}
	if err := s.empleadoRepo.Create(ctx, empleado); err != nil {
		return nil, apierror.Storage("error creando empleado", err)
	}
	return &dto.EmpleadoResponse{
		ID:      empleado.ID,
		Nombre:  empleado.Nombre,
		Usuario: empleado.Usuario,
		Rol:     empleado.Rol,
	}, nil
}

func (s *authService) ListarEmpleados(ctx context.Context) ([]dto.EmpleadoResponse, error) {
	empleados, err := s.empleadoRepo.List(ctx)
	if err != nil {
		return nil, apierror.Storage("error listando empleados", err)
	}
	out := make([]dto.EmpleadoResponse, 0, len(empleados))
	for _, e := range empleados {
		out = append(out, dto.EmpleadoResponse{ID: e.ID, Nombre: e.Nombre, Usuario: e.Usuario, Rol: e.Rol})
	}
	return out, nil
}

func (s *authService) EliminarEmpleado(ctx context.Context, id int) error {
	if _, err := s.empleadoRepo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "empleado no encontrado")
	}
	if err := s.empleadoRepo.Delete(ctx, id); err != nil {
		return apierror.Storage("error eliminando empleado", err)
	}
	return nil
}
