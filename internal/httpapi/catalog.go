package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wholesaleDelivery/internal/geo"
	"wholesaleDelivery/repository"
)

// allFilter is the menu entry meaning "no filter".
const allFilter = "All"

func filterValue(v string) string {
	if v == allFilter {
		return ""
	}
	return v
}

func (h *Handler) listLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"locations": h.app.Table.Names(),
		"default":   geo.DefaultLocation,
	})
}

func (h *Handler) listCategories(c *gin.Context) {
	ctx := c.Request.Context()
	cats, err := h.app.Products.Categories(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	locs, err := h.app.Products.Locations(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats, "supplier_locations": locs})
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.app.Products.List(c.Request.Context(), repository.ProductFilter{
		Category: filterValue(c.Query("category")),
		Location: filterValue(c.Query("location")),
		Query:    c.Query("q"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.app.Products.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type quoteRequest struct {
	ProductID        int64  `json:"product_id"`
	Quantity         int64  `json:"quantity"`
	DeliveryLocation string `json:"delivery_location"`
}

func (h *Handler) createQuote(c *gin.Context) {
	var req quoteRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.app.Quote(c.Request.Context(), req.ProductID, req.Quantity, req.DeliveryLocation)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req repository.PlaceOrderInput
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.app.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}
