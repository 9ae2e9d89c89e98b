package router

import (
	"time"

	"github.com/Joan074/SellPoint/internal/config"
	"github.com/Joan074/SellPoint/internal/handler"
	"github.com/Joan074/SellPoint/internal/middleware"
	"github.com/Joan074/SellPoint/internal/repository"
	"github.com/Joan074/SellPoint/internal/service"
	"github.com/Joan074/SellPoint/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	empleadoRepo := repository.NewEmpleadoRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(empleadoRepo, tokenRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, proveedorRepo, rdb)
	catalogoSvc := service.NewCatalogoService(categoriaRepo, proveedorRepo, clienteRepo)
	reporteSvc := service.NewReporteService(ventaRepo)
	ventaSvc := service.NewVentaService(
		ventaRepo, productoRepo, empleadoRepo, clienteRepo,
		dispatcher,
		decimal.NewFromFloat(cfg.IVARate),
		cfg.TicketPrefix,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Price check kiosk — no auth required
	r.GET("/v1/consulta-precios/:codigo", consultaH.Consultar)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, tokenRepo)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)

		// Ventas — anular requires supervisor level
		v1.POST("/ventas", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.RegistrarVenta)
		v1.GET("/ventas", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.ListarVentas)
		v1.GET("/ventas/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.ObtenerVenta)
		v1.DELETE("/ventas/:id", middleware.RequireRole("supervisor", "administrador"), ventasH.AnularVenta)

		// Productos — reads for all roles, writes for administrador
		v1.GET("/productos", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.Listar)
		v1.GET("/productos/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.Obtener)
		v1.PATCH("/productos/:id/stock", middleware.RequireRole("supervisor", "administrador"), productosH.AjustarStock)
		v1.PATCH("/productos/:id/precio", middleware.RequireRole("supervisor", "administrador"), productosH.ActualizarPrecio)
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
		}

		// Categorías — administrador can write, all authenticated can read
		v1.GET("/categorias", middleware.RequireRole("cajero", "supervisor", "administrador"), catalogoH.ListarCategorias)
		categorias := v1.Group("/categorias", middleware.RequireRole("administrador"))
		{
			categorias.POST("", catalogoH.CrearCategoria)
			categorias.DELETE("/:id", catalogoH.EliminarCategoria)
		}

		prov := v1.Group("/proveedores", middleware.RequireRole("administrador"))
		{
			prov.POST("", catalogoH.CrearProveedor)
			prov.GET("", catalogoH.ListarProveedores)
			prov.PUT("/:id", catalogoH.ActualizarProveedor)
			prov.DELETE("/:id", catalogoH.EliminarProveedor)
		}

		clientes := v1.Group("/clientes", middleware.RequireRole("cajero", "supervisor", "administrador"))
		{
			clientes.POST("", catalogoH.CrearCliente)
			clientes.GET("", catalogoH.ListarClientes)
			clientes.PUT("/:id", catalogoH.ActualizarCliente)
			clientes.DELETE("/:id", middleware.RequireRole("administrador"), catalogoH.EliminarCliente)
		}

		empleados := v1.Group("/empleados", middleware.RequireRole("administrador"))
		{
			empleados.POST("", authH.CrearEmpleado)
			empleados.GET("", authH.ListarEmpleados)
			empleados.DELETE("/:id", authH.EliminarEmpleado)
		}

		v1.GET("/reportes/diario", middleware.RequireRole("supervisor", "administrador"), reportesH.Diario)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
