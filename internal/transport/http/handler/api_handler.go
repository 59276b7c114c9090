package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-inventory/internal/service"
	resp "go-gin-inventory/internal/transport/http/response"
)

// APIHandler AJAX 用的只读 JSON 端点，和页面查询共用一套 service
type APIHandler struct {
	inv *service.InventoryService
}

func NewAPIHandler(inv *service.InventoryService) *APIHandler {
	return &APIHandler{inv: inv}
}

func (h *APIHandler) Search(c *gin.Context) {
	products, err := h.inv.SearchProducts(c.Request.Context(), c.Query("q"), c.Query("supplier"), service.SearchLimit)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"products": products,
		"count":    len(products),
	}))
}

func (h *APIHandler) Suppliers(c *gin.Context) {
	suppliers, err := h.inv.ListSuppliers(c.Request.Context())
	if err != nil {
		resp.Err(c, err)
		return
	}
	type supRow struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	rows := make([]supRow, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, supRow{ID: s.ID, Name: s.Name})
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"suppliers": rows}))
}

func (h *APIHandler) Stats(c *gin.Context) {
	stats, err := h.inv.Stats(c.Request.Context())
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"stats": stats}))
}
