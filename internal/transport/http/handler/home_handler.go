package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-inventory/internal/service"
	mdw "go-gin-inventory/internal/transport/http/middleware"
	resp "go-gin-inventory/internal/transport/http/response"
)

type HomeHandler struct {
	inv *service.InventoryService
}

func NewHomeHandler(inv *service.InventoryService) *HomeHandler {
	return &HomeHandler{inv: inv}
}

// Home 首页：开放读取，身份只用来标注，不拦截
func (h *HomeHandler) Home(c *gin.Context) {
	search := c.Query("search")
	supplierID := c.Query("supplier")

	products, err := h.inv.SearchProducts(c.Request.Context(), search, supplierID, service.SearchLimit)
	if err != nil {
		resp.Err(c, err)
		return
	}
	suppliers, err := h.inv.ListSuppliers(c.Request.Context())
	if err != nil {
		resp.Err(c, err)
		return
	}

	out := gin.H{
		"products":         products,
		"suppliers":        suppliers,
		"searchQuery":      search,
		"selectedSupplier": supplierID,
	}
	if id := mdw.IdentityFrom(c); id != nil {
		out["user"] = id
	}
	c.JSON(http.StatusOK, resp.OK(out))
}
