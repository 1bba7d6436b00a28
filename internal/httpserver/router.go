package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"erpsaas/internal/auth"
	"erpsaas/internal/httpserver/handlers"
	"erpsaas/internal/obs"
)

// NewRouter mounts the whole API under /api. Route groups follow the role
// matrix: each protected subtree carries its own RequireRoles allow-list, and
// SUPER_ADMIN passes every gate.
func NewRouter(db *gorm.DB, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(obs.Instrument)

	r.Route("/api", func(api chi.Router) {
		// Public surface: onboarding, both logins, plan catalog.
		api.Post("/auth/registro-empresa", handlers.RegistroEmpresa(db, lg))
		api.Post("/auth/login", handlers.Login(db, lg))
		api.Post("/saas/login", handlers.LoginSaas(db, lg))
		api.Post("/saas/admin", handlers.CreateAdminSaas(db, lg))
		api.Get("/planes", handlers.ListPlanes(db, lg))
		api.Get("/planes/{id}", handlers.GetPlan(db, lg))
		api.Post("/suscripciones", handlers.CreateSuscripcion(db, lg))
		api.Post("/empresas", handlers.CreateEmpresa(db, lg))

		api.Group(func(protected chi.Router) {
			protected.Use(auth.JWTAuth(db))

			protected.Post("/auth/logout", handlers.Logout(db))
			protected.Post("/saas/logout", handlers.LogoutSaas(db))

			// Empresas
			protected.With(auth.RequireRoles(auth.RolSuperAdmin)).
				Get("/empresas", handlers.ListEmpresas(db, lg))
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin)).
				Get("/empresas/{id}", handlers.GetEmpresa(db, lg))
			protected.With(auth.RequireRoles(auth.RolPropietario)).
				Put("/empresas/{id}", handlers.UpdateEmpresa(db, lg))
			protected.With(auth.RequireRoles(auth.RolSuperAdmin)).
				Delete("/empresas/{id}", handlers.DeleteEmpresa(db, lg))

			// Configuración de empresa
			protected.With(auth.RequireRoles(auth.RolPropietario)).
				Post("/configuraciones", handlers.CreateConfig(db, lg))
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin, auth.RolVendedor)).
				Get("/configuraciones", handlers.ListConfigs(db, lg))
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin, auth.RolVendedor)).
				Get("/configuraciones/{id}", handlers.GetConfig(db, lg))
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin)).
				Put("/configuraciones/{id}", handlers.UpdateConfig(db, lg))
			protected.With(auth.RequireRoles(auth.RolPropietario)).
				Delete("/configuraciones/{id}", handlers.DeleteConfig(db, lg))

			// Roles
			protected.With(auth.RequireRoles(auth.RolSuperAdmin)).Group(func(g chi.Router) {
				g.Post("/roles", handlers.CreateRol(db, lg))
				g.Put("/roles/{id}", handlers.UpdateRol(db, lg))
				g.Delete("/roles/{id}", handlers.DeleteRol(db, lg))
			})
			protected.With(auth.RequireRoles(auth.RolSuperAdmin, auth.RolPropietario, auth.RolAdmin)).Group(func(g chi.Router) {
				g.Get("/roles", handlers.ListRoles(db, lg))
				g.Get("/roles/{id}", handlers.GetRol(db, lg))
			})

			// Usuarios
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin)).Group(func(g chi.Router) {
				g.Post("/usuarios", handlers.CreateUsuario(db, lg))
				g.Get("/usuarios", handlers.ListUsuarios(db, lg))
				g.Get("/usuarios/inactivos", handlers.ListUsuariosInactivos(db, lg))
				g.Get("/usuarios/{id}", handlers.GetUsuario(db, lg))
				g.Put("/usuarios/{id}", handlers.UpdateUsuario(db, lg))
				g.Put("/usuarios/{id}/desactivar", handlers.DesactivarUsuario(db, lg))
				g.Put("/usuarios/{id}/activar", handlers.ActivarUsuario(db, lg))
			})
			protected.With(auth.RequireRoles(auth.RolSuperAdmin)).
				Delete("/usuarios/{id}", handlers.DeleteUsuario(db, lg))

			// Catálogo e inventario
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin)).Group(func(g chi.Router) {
				g.Post("/categorias", handlers.CreateCategoria(db, lg))
				g.Put("/categorias/{id}", handlers.UpdateCategoria(db, lg))
				g.Delete("/categorias/{id}", handlers.DeleteCategoria(db, lg))
				g.Post("/productos", handlers.CreateProducto(db, lg))
				g.Put("/productos/{id}", handlers.UpdateProducto(db, lg))
				g.Delete("/productos/{id}", handlers.DeleteProducto(db, lg))
				g.Post("/inventarios", handlers.CreateInventario(db, lg))
				g.Put("/inventarios/{id}", handlers.UpdateInventario(db, lg))
				g.Delete("/inventarios/{id}", handlers.DeleteInventario(db, lg))
			})
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin, auth.RolVendedor)).Group(func(g chi.Router) {
				g.Get("/categorias", handlers.ListCategorias(db, lg))
				g.Get("/categorias/{id}", handlers.GetCategoria(db, lg))
				g.Get("/productos", handlers.ListProductos(db, lg))
				g.Get("/productos/{id}", handlers.GetProducto(db, lg))
				g.Get("/inventarios", handlers.ListInventarios(db, lg))
				g.Get("/inventarios/{id}", handlers.GetInventario(db, lg))
			})

			// Proveedores y vínculos producto-proveedor
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin)).Group(func(g chi.Router) {
				g.Post("/proveedores", handlers.CreateProveedor(db, lg))
				g.Get("/proveedores", handlers.ListProveedores(db, lg))
				g.Get("/proveedores/{id}", handlers.GetProveedor(db, lg))
				g.Put("/proveedores/{id}", handlers.UpdateProveedor(db, lg))
				g.Delete("/proveedores/{id}", handlers.DeleteProveedor(db, lg))
				g.Get("/proveedores/{id}/productos", handlers.ProductosDeProveedor(db, lg))
				g.Post("/productos/{id}/proveedores", handlers.VincularProveedor(db, lg))
				g.Put("/productos/{id}/proveedores/{idProv}", handlers.UpdateVinculoProveedor(db, lg))
				g.Delete("/productos/{id}/proveedores/{idProv}", handlers.DesvincularProveedor(db, lg))
				g.Get("/relaciones-compras", handlers.RelacionesCompras(db, lg))
			})

			// Clientes y ventas
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin, auth.RolVendedor)).Group(func(g chi.Router) {
				g.Post("/clientes", handlers.CreateCliente(db, lg))
				g.Get("/clientes", handlers.ListClientes(db, lg))
				g.Get("/clientes/{id}", handlers.GetCliente(db, lg))
				g.Put("/clientes/{id}", handlers.UpdateCliente(db, lg))
				g.Post("/ventas", handlers.CreateVenta(db, lg))
				g.Get("/ventas", handlers.ListVentas(db, lg))
				g.Get("/ventas/{id}", handlers.GetVenta(db, lg))
				g.Post("/detalles-venta", handlers.CreateDetalleVenta(db, lg))
				g.Get("/ventas/{id}/detalles", handlers.ListDetallesVenta(db, lg))
				g.Post("/pagos", handlers.CreatePago(db, lg))
				g.Get("/pagos", handlers.ListPagos(db, lg))
				g.Get("/pagos/{id}", handlers.GetPago(db, lg))
			})
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin)).Group(func(g chi.Router) {
				g.Delete("/clientes/{id}", handlers.DeleteCliente(db, lg))
				g.Delete("/ventas/{id}", handlers.DeleteVenta(db, lg))
				g.Delete("/detalles-venta/{id}", handlers.DeleteDetalleVenta(db, lg))
				g.Delete("/pagos/{id}", handlers.DeletePago(db, lg))
			})

			// Compras
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin)).Group(func(g chi.Router) {
				g.Post("/compras", handlers.CreateCompra(db, lg))
				g.Get("/compras", handlers.ListCompras(db, lg))
				g.Get("/compras/{id}", handlers.GetCompra(db, lg))
				g.Put("/compras/{id}", handlers.UpdateCompra(db, lg))
				g.Delete("/compras/{id}", handlers.DeleteCompra(db, lg))
				g.Post("/detalles-compra", handlers.CreateDetalleCompra(db, lg))
				g.Get("/compras/{id}/detalles", handlers.ListDetallesCompra(db, lg))
				g.Delete("/detalles-compra/{id}", handlers.DeleteDetalleCompra(db, lg))
			})

			// Notificaciones
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin)).Group(func(g chi.Router) {
				g.Post("/notificaciones", handlers.CreateNotificacion(db, lg))
				g.Delete("/notificaciones/{id}", handlers.DeleteNotificacion(db, lg))
			})
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin, auth.RolVendedor)).Group(func(g chi.Router) {
				g.Get("/notificaciones", handlers.ListNotificaciones(db, lg))
				g.Get("/notificaciones/{id}", handlers.GetNotificacion(db, lg))
				g.Put("/notificaciones/{id}", handlers.UpdateNotificacion(db, lg))
			})

			// Auditoría
			protected.With(auth.RequireRoles(auth.RolPropietario, auth.RolAdmin)).Group(func(g chi.Router) {
				g.Post("/auditoria", handlers.CreateAuditoria(db, lg))
				g.Get("/auditoria", handlers.ListAuditoria(db, lg))
				g.Get("/auditoria/{id}", handlers.GetAuditoria(db, lg))
			})
			protected.With(auth.RequireRoles(auth.RolSuperAdmin)).
				Delete("/auditoria/{id}", handlers.DeleteAuditoria(db, lg))

			// Panel SaaS
			protected.With(auth.RequireRoles(auth.RolSuperAdmin)).Group(func(g chi.Router) {
				g.Get("/saas/admins", handlers.ListAdminsSaas(db, lg))
				g.Get("/saas/admins/inactivos", handlers.ListAdminsSaasInactivos(db, lg))
				g.Get("/saas/admins/{id}", handlers.GetAdminSaas(db, lg))
				g.Put("/saas/admins/{id}", handlers.UpdateAdminSaas(db, lg))
				g.Put("/saas/admins/{id}/desactivar", handlers.DesactivarAdminSaas(db, lg))
				g.Put("/saas/admins/{id}/activar", handlers.ActivarAdminSaas(db, lg))

				g.Post("/planes", handlers.CreatePlan(db, lg))
				g.Put("/planes/{id}", handlers.UpdatePlan(db, lg))
				g.Delete("/planes/{id}", handlers.DeletePlan(db, lg))

				g.Get("/suscripciones", handlers.ListSuscripciones(db, lg))
				g.Put("/suscripciones/{id}", handlers.UpdateSuscripcion(db, lg))

				g.Get("/saas/dashboard/estadisticas", handlers.DashboardEstadisticas(db, lg))
				g.Get("/saas/dashboard/empresas-recientes", handlers.EmpresasRecientes(db, lg))
				g.Get("/saas/dashboard/pagos-pendientes", handlers.PagosPendientes(db, lg))
				g.Get("/saas/empresas", handlers.EmpresasConPropietarios(db, lg))
			})
			protected.With(auth.RequireRoles(auth.RolPropietario)).
				Get("/empresas/{id}/suscripcion", handlers.GetSuscripcionesEmpresa(db, lg))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Method(http.MethodGet, "/metrics", obs.Handler())
	return r
}
