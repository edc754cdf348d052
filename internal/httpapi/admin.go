package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wholesaleDelivery/models"
	"wholesaleDelivery/repository"
)

type loginRequest struct {
	Password string `json:"password"`
}

// adminLogin exchanges the admin password for a bearer token. There is no
// logout endpoint; clients drop the token and it expires on its own.
func (h *Handler) adminLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	tok, err := h.app.Admin.Login(req.Password)
	if err != nil {
		h.app.Logger.Warn("admin login failed", "client_ip", c.ClientIP())
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok, "token_type": "Bearer"})
}

func (h *Handler) createProduct(c *gin.Context) {
	var p models.Product
	if !bindJSON(c, &p) {
		return
	}
	p.ID = 0
	created, err := h.app.Products.Create(c.Request.Context(), &p)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.app.Logger.Info("product created", "product_id", created.ID, "name", created.Name)
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var u repository.ProductUpdate
	if !bindJSON(c, &u) {
		return
	}
	p, err := h.app.Products.Update(c.Request.Context(), id, u)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.app.Logger.Info("product updated", "product_id", id)
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.app.Products.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	h.app.Logger.Info("product deleted", "product_id", id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) listOrders(c *gin.Context) {
	var f repository.OrderFilter
	if s := filterValue(c.Query("status")); s != "" {
		status := models.OrderStatus(s)
		if !status.Valid() {
			abortWithError(c, badRequest{msg: "unknown status " + strconv.Quote(s)})
			return
		}
		f.Statuses = []models.OrderStatus{status}
	}
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			abortWithError(c, badRequest{msg: "limit must be a non-negative integer"})
			return
		}
		f.Limit = n
	}
	orders, err := h.app.Orders.List(c.Request.Context(), f)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (h *Handler) listDrivers(c *gin.Context) {
	drivers, err := h.app.Drivers.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers, "count": len(drivers)})
}

func (h *Handler) analytics(c *gin.Context) {
	ctx := c.Request.Context()
	summary, err := h.app.Orders.Summary(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	counts, err := h.app.Orders.StatusCounts(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	revenue, err := h.app.Orders.RevenueByProduct(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":            summary,
		"status_counts":      counts,
		"revenue_by_product": revenue,
	})
}
