package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"erpsaas/internal/models"
)

// ==================== CATEGORIAS ====================

func CreateCategoria(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDCategoria        string `json:"id_categoria"`
			IDEmpresa          string `json:"id_empresa"`
			Nombre             string `json:"nombre"`
			Descripcion        string `json:"descripcion"`
			OrdenVisualizacion int    `json:"orden_visualizacion"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDEmpresa == "" {
			respondError(w, http.StatusBadRequest, "id_empresa es obligatorio")
			return
		}
		if req.IDCategoria == "" {
			req.IDCategoria = uuid.NewString()
		}
		c := models.Categoria{
			IDCategoria:        req.IDCategoria,
			IDEmpresa:          req.IDEmpresa,
			Nombre:             req.Nombre,
			Descripcion:        req.Descripcion,
			OrdenVisualizacion: req.OrdenVisualizacion,
			Activo:             true,
		}
		if err := db.Create(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Categoría creada", "categoria": c})
	}
}

func ListCategorias(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.Categoria
		if err := db.Order("orden_visualizacion").Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, cs)
	}
}

func GetCategoria(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Categoria
		if err := db.First(&c, "id_categoria = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Categoría no encontrada")
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func UpdateCategoria(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Categoria
		if err := db.First(&c, "id_categoria = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Categoría no encontrada")
			return
		}
		var req struct {
			Nombre             *string `json:"nombre"`
			Descripcion        *string `json:"descripcion"`
			Activo             *bool   `json:"activo"`
			OrdenVisualizacion *int    `json:"orden_visualizacion"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Nombre != nil {
			c.Nombre = *req.Nombre
		}
		if req.Descripcion != nil {
			c.Descripcion = *req.Descripcion
		}
		if req.Activo != nil {
			c.Activo = *req.Activo
		}
		if req.OrdenVisualizacion != nil {
			c.OrdenVisualizacion = *req.OrdenVisualizacion
		}
		if err := db.Save(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Categoría actualizada", "categoria": c})
	}
}

func DeleteCategoria(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Categoria{}, "id_categoria", "Categoría no encontrada", "Categoría eliminada")
}

// ==================== PROVEEDORES ====================

func CreateProveedor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDProveedor string `json:"id_proveedor"`
			IDEmpresa   string `json:"id_empresa"`
			Nombre      string `json:"nombre"`
			Telefono    string `json:"telefono"`
			Email       string `json:"email"`
			Direccion   string `json:"direccion"`
			NitRuc      string `json:"nit_ruc"`
			FormaPago   string `json:"forma_pago"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDEmpresa == "" || req.Nombre == "" {
			respondError(w, http.StatusBadRequest, "Faltan datos obligatorios (id_empresa, nombre)")
			return
		}
		if req.IDProveedor == "" {
			req.IDProveedor = uuid.NewString()
		}
		p := models.Proveedor{
			IDProveedor: req.IDProveedor,
			IDEmpresa:   req.IDEmpresa,
			Nombre:      req.Nombre,
			Telefono:    req.Telefono,
			Email:       req.Email,
			Direccion:   req.Direccion,
			NitRuc:      req.NitRuc,
			FormaPago:   req.FormaPago,
			Activo:      true,
		}
		if err := db.Create(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Proveedor creado", "proveedor": p})
	}
}

func ListProveedores(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ps []models.Proveedor
		if err := db.Find(&ps).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ps)
	}
}

func GetProveedor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Proveedor
		if err := db.First(&p, "id_proveedor = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Proveedor no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func UpdateProveedor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Proveedor
		if err := db.First(&p, "id_proveedor = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Proveedor no encontrado")
			return
		}
		var req struct {
			Nombre    *string `json:"nombre"`
			Telefono  *string `json:"telefono"`
			Email     *string `json:"email"`
			Direccion *string `json:"direccion"`
			NitRuc    *string `json:"nit_ruc"`
			FormaPago *string `json:"forma_pago"`
			Activo    *bool   `json:"activo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Nombre != nil {
			p.Nombre = *req.Nombre
		}
		if req.Telefono != nil {
			p.Telefono = *req.Telefono
		}
		if req.Email != nil {
			p.Email = *req.Email
		}
		if req.Direccion != nil {
			p.Direccion = *req.Direccion
		}
		if req.NitRuc != nil {
			p.NitRuc = *req.NitRuc
		}
		if req.FormaPago != nil {
			p.FormaPago = *req.FormaPago
		}
		if req.Activo != nil {
			p.Activo = *req.Activo
		}
		if err := db.Save(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Proveedor actualizado", "proveedor": p})
	}
}

func DeleteProveedor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Proveedor{}, "id_proveedor", "Proveedor no encontrado", "Proveedor eliminado")
}

// ==================== PRODUCTOS ====================

func CreateProducto(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDProducto     string  `json:"id_producto"`
			IDEmpresa      string  `json:"id_empresa"`
			IDCategoria    string  `json:"id_categoria"`
			CodigoProducto string  `json:"codigo_producto"`
			Nombre         string  `json:"nombre"`
			Descripcion    string  `json:"descripcion"`
			PrecioVenta    float64 `json:"precio_venta"`
			PrecioCompra   float64 `json:"precio_compra"`
			UnidadMedida   string  `json:"unidad_medida"`
			ImagenURL      string  `json:"imagen_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDEmpresa == "" {
			respondError(w, http.StatusBadRequest, "id_empresa es obligatorio")
			return
		}
		if req.CodigoProducto != "" {
			var n int64
			db.Model(&models.Producto{}).
				Where("id_empresa = ? AND codigo_producto = ?", req.IDEmpresa, req.CodigoProducto).
				Count(&n)
			if n > 0 {
				respondError(w, http.StatusBadRequest, "Ya existe un producto con ese código en la empresa")
				return
			}
		}
		if req.IDProducto == "" {
			req.IDProducto = uuid.NewString()
		}
		p := models.Producto{
			IDProducto:     req.IDProducto,
			IDEmpresa:      req.IDEmpresa,
			IDCategoria:    req.IDCategoria,
			CodigoProducto: req.CodigoProducto,
			Nombre:         req.Nombre,
			Descripcion:    req.Descripcion,
			PrecioVenta:    req.PrecioVenta,
			PrecioCompra:   req.PrecioCompra,
			UnidadMedida:   req.UnidadMedida,
			ImagenURL:      req.ImagenURL,
			Activo:         true,
		}
		if err := db.Create(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Producto creado", "producto": p})
	}
}

func ListProductos(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ps []models.Producto
		if err := db.Order("fecha_creacion desc").Find(&ps).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, ps)
	}
}

func GetProducto(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Producto
		if err := db.First(&p, "id_producto = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func UpdateProducto(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Producto
		if err := db.First(&p, "id_producto = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		var req struct {
			IDCategoria    *string  `json:"id_categoria"`
			CodigoProducto *string  `json:"codigo_producto"`
			Nombre         *string  `json:"nombre"`
			Descripcion    *string  `json:"descripcion"`
			PrecioVenta    *float64 `json:"precio_venta"`
			PrecioCompra   *float64 `json:"precio_compra"`
			UnidadMedida   *string  `json:"unidad_medida"`
			ImagenURL      *string  `json:"imagen_url"`
			Activo         *bool    `json:"activo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDCategoria != nil {
			p.IDCategoria = *req.IDCategoria
		}
		if req.CodigoProducto != nil {
			p.CodigoProducto = *req.CodigoProducto
		}
		if req.Nombre != nil {
			p.Nombre = *req.Nombre
		}
		if req.Descripcion != nil {
			p.Descripcion = *req.Descripcion
		}
		if req.PrecioVenta != nil {
			p.PrecioVenta = *req.PrecioVenta
		}
		if req.PrecioCompra != nil {
			p.PrecioCompra = *req.PrecioCompra
		}
		if req.UnidadMedida != nil {
			p.UnidadMedida = *req.UnidadMedida
		}
		if req.ImagenURL != nil {
			p.ImagenURL = *req.ImagenURL
		}
		if req.Activo != nil {
			p.Activo = *req.Activo
		}
		if err := db.Save(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Producto actualizado", "producto": p})
	}
}

func DeleteProducto(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Producto{}, "id_producto", "Producto no encontrado", "Producto eliminado")
}

// ==================== PRODUCTO <-> PROVEEDOR ====================

func VincularProveedor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idProducto := chi.URLParam(r, "id")
		var req struct {
			IDProveedor        string  `json:"id_proveedor"`
			PrecioCompra       float64 `json:"precio_compra"`
			TiempoEntregaDias  int     `json:"tiempo_entrega_dias"`
			ProveedorPreferido bool    `json:"proveedor_preferido"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDProveedor == "" {
			respondError(w, http.StatusBadRequest, "id_proveedor es obligatorio")
			return
		}
		link := models.ProductoProveedor{
			IDProducto:         idProducto,
			IDProveedor:        req.IDProveedor,
			PrecioCompra:       req.PrecioCompra,
			TiempoEntregaDias:  req.TiempoEntregaDias,
			ProveedorPreferido: req.ProveedorPreferido,
		}
		if err := db.Create(&link).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Proveedor vinculado", "vinculo": link})
	}
}

func UpdateVinculoProveedor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var link models.ProductoProveedor
		err := db.First(&link, "id_producto = ? AND id_proveedor = ?",
			chi.URLParam(r, "id"), chi.URLParam(r, "idProv")).Error
		if err != nil {
			respondError(w, http.StatusNotFound, "Vínculo no encontrado")
			return
		}
		var req struct {
			PrecioCompra       *float64 `json:"precio_compra"`
			TiempoEntregaDias  *int     `json:"tiempo_entrega_dias"`
			ProveedorPreferido *bool    `json:"proveedor_preferido"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.PrecioCompra != nil {
			link.PrecioCompra = *req.PrecioCompra
		}
		if req.TiempoEntregaDias != nil {
			link.TiempoEntregaDias = *req.TiempoEntregaDias
		}
		if req.ProveedorPreferido != nil {
			link.ProveedorPreferido = *req.ProveedorPreferido
		}
		if err := db.Save(&link).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Vínculo actualizado", "vinculo": link})
	}
}

func DesvincularProveedor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.ProductoProveedor{}, "id_producto = ? AND id_proveedor = ?",
			chi.URLParam(r, "id"), chi.URLParam(r, "idProv"))
		if res.Error != nil {
			respondError(w, http.StatusInternalServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "Vínculo no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Proveedor desvinculado"})
	}
}

func ProductosDeProveedor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var links []models.ProductoProveedor
		err := db.Preload("Producto").
			Where("id_proveedor = ?", chi.URLParam(r, "id")).
			Find(&links).Error
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, links)
	}
}

// RelacionesCompras lists every producto-proveedor link with both sides
// preloaded, for the purchasing screen.
func RelacionesCompras(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var links []models.ProductoProveedor
		if err := db.Preload("Producto").Preload("Proveedor").Find(&links).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, links)
	}
}

// ==================== INVENTARIOS ====================

func CreateInventario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDInventario    string `json:"id_inventario"`
			IDProducto      string `json:"id_producto"`
			CantidadActual  int    `json:"cantidad_actual"`
			StockMinimo     int    `json:"stock_minimo"`
			StockMaximo     int    `json:"stock_maximo"`
			UbicacionFisica string `json:"ubicacion_fisica"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.IDProducto == "" {
			respondError(w, http.StatusBadRequest, "id_producto es obligatorio")
			return
		}
		if req.IDInventario == "" {
			req.IDInventario = uuid.NewString()
		}
		inv := models.Inventario{
			IDInventario:    req.IDInventario,
			IDProducto:      req.IDProducto,
			CantidadActual:  req.CantidadActual,
			StockMinimo:     req.StockMinimo,
			StockMaximo:     req.StockMaximo,
			UbicacionFisica: req.UbicacionFisica,
		}
		if err := db.Create(&inv).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"message": "Inventario creado", "inventario": inv})
	}
}

func ListInventarios(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var invs []models.Inventario
		if err := db.Preload("Producto").Find(&invs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, invs)
	}
}

func GetInventario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inv models.Inventario
		if err := db.Preload("Producto").First(&inv, "id_inventario = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Inventario no encontrado")
			return
		}
		respondJSON(w, http.StatusOK, inv)
	}
}

func UpdateInventario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inv models.Inventario
		if err := db.First(&inv, "id_inventario = ?", chi.URLParam(r, "id")).Error; err != nil {
			respondError(w, http.StatusNotFound, "Inventario no encontrado")
			return
		}
		var req struct {
			CantidadActual  *int    `json:"cantidad_actual"`
			StockMinimo     *int    `json:"stock_minimo"`
			StockMaximo     *int    `json:"stock_maximo"`
			UbicacionFisica *string `json:"ubicacion_fisica"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.CantidadActual != nil {
			inv.CantidadActual = *req.CantidadActual
		}
		if req.StockMinimo != nil {
			inv.StockMinimo = *req.StockMinimo
		}
		if req.StockMaximo != nil {
			inv.StockMaximo = *req.StockMaximo
		}
		if req.UbicacionFisica != nil {
			inv.UbicacionFisica = *req.UbicacionFisica
		}
		if err := db.Save(&inv).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"message": "Inventario actualizado", "inventario": inv})
	}
}

func DeleteInventario(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return deleteByID(db, &models.Inventario{}, "id_inventario", "Inventario no encontrado", "Inventario eliminado")
}

// deleteByID handles the uniform delete-by-primary-key endpoints.
func deleteByID(db *gorm.DB, model interface{}, column, notFound, done string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(model, column+" = ?", chi.URLParam(r, "id"))
		if res.Error != nil {
			respondError(w, http.StatusInternalServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, notFound)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": done})
	}
}
