package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"erpsaas/internal/auth"
	"erpsaas/internal/httpserver"
	"erpsaas/internal/logger"
	"erpsaas/internal/models"
	"erpsaas/internal/obs"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.Empresa{}, &models.ConfiguracionEmpresa{},
		&models.Rol{}, &models.Usuario{},
		&models.AdminSaas{}, &models.Plan{}, &models.Suscripcion{},
		&models.Categoria{}, &models.Proveedor{}, &models.Producto{},
		&models.ProductoProveedor{}, &models.Inventario{},
		&models.Cliente{}, &models.Venta{}, &models.DetalleVenta{}, &models.Pago{},
		&models.Compra{}, &models.DetalleCompra{},
		&models.Notificacion{}, &models.Auditoria{},
		&models.TokenRevocado{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedRoles(db, lg)
	seedPlanes(db, lg)

	obs.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	auth.StartRevocationSweeper(ctx, db, lg, time.Hour)

	router := httpserver.NewRouter(db, lg)
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	lg.Infow("listening", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}

func seedRoles(db *gorm.DB, lg *zap.SugaredLogger) {
	roles := []models.Rol{
		{IDRol: auth.RolSuperAdmin, Nombre: "Super Administrador", Descripcion: "Acceso total a la plataforma"},
		{IDRol: auth.RolPropietario, Nombre: "Propietario", Descripcion: "Dueño de la empresa"},
		{IDRol: auth.RolAdmin, Nombre: "Administrador", Descripcion: "Gestión operativa de la empresa"},
		{IDRol: auth.RolVendedor, Nombre: "Vendedor", Descripcion: "Registro de ventas y consultas"},
	}
	for _, rol := range roles {
		var n int64
		db.Model(&models.Rol{}).Where("id_rol = ?", rol.IDRol).Count(&n)
		if n > 0 {
			continue
		}
		if err := db.Create(&rol).Error; err != nil {
			lg.Warnw("role seed failed", "rol", rol.IDRol, "error", err)
		}
	}
}

func seedPlanes(db *gorm.DB, lg *zap.SugaredLogger) {
	planes := []models.Plan{
		{IDPlan: "FREE", Nombre: "Gratuito", PrecioMensual: 0, MaxUsuarios: 2, MaxProductos: 50, Activo: true},
		{IDPlan: "BASIC", Nombre: "Básico", PrecioMensual: 99, MaxUsuarios: 5, MaxProductos: 500, Activo: true},
		{IDPlan: "PREMIUM", Nombre: "Premium", PrecioMensual: 249, MaxUsuarios: 20, MaxProductos: 5000, AccesoReportesAvanzados: true, Activo: true},
	}
	for _, p := range planes {
		var n int64
		db.Model(&models.Plan{}).Where("id_plan = ?", p.IDPlan).Count(&n)
		if n > 0 {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			lg.Warnw("plan seed failed", "plan", p.IDPlan, "error", err)
		}
	}
}
