// Package httpapi is the buyer and admin HTTP surface.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wholesaleDelivery/internal/app"
)

// Handler serves the HTTP API over an App.
type Handler struct {
	app *app.App
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(a *app.App) *gin.Engine {
	h := &Handler{app: a}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(a.Logger, a.Metrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(a.Metrics.Handler()))

	api := r.Group("/api")
	api.GET("/locations", h.listLocations)
	api.GET("/categories", h.listCategories)
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.POST("/quotes", h.createQuote)
	api.POST("/orders", h.placeOrder)
	api.POST("/admin/login", h.adminLogin)

	admin := api.Group("/admin", RequireAdmin(a.Issuer))
	admin.GET("/products", h.listProducts)
	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)
	admin.GET("/orders", h.listOrders)
	admin.GET("/drivers", h.listDrivers)
	admin.GET("/analytics", h.analytics)

	return r
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, badRequest{msg: "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		abortWithError(c, badRequest{msg: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
