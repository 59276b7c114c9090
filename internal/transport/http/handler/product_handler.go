package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-inventory/internal/domain"
	"go-gin-inventory/internal/service"
	resp "go-gin-inventory/internal/transport/http/response"
)

type ProductHandler struct {
	inv *service.InventoryService
}

func NewProductHandler(inv *service.InventoryService) *ProductHandler {
	return &ProductHandler{inv: inv}
}

type productReq struct {
	Name       string  `form:"name" json:"name"`
	Price      float64 `form:"price" json:"price"`
	Quantity   int     `form:"quantity" json:"quantity"`
	SupplierID string  `form:"supplier" json:"supplier"`
}

func productView(p *domain.Product) gin.H {
	out := gin.H{
		"id":         p.ID,
		"name":       p.Name,
		"price":      p.Price,
		"quantity":   p.Quantity,
		"totalValue": p.TotalValue(),
		"supplierId": p.SupplierID,
	}
	if p.Supplier != nil {
		out["supplier"] = p.Supplier
	}
	return out
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.inv.SearchProducts(c.Request.Context(), "", "", 0)
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"products": products}))
}

func (h *ProductHandler) Detail(c *gin.Context) {
	p, err := h.inv.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"product": productView(p)}))
}

// CreateForm 建品表单要带供应商下拉
func (h *ProductHandler) CreateForm(c *gin.Context) {
	suppliers, err := h.inv.ListSuppliers(c.Request.Context())
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"form": "product", "suppliers": suppliers}))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in productReq
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(resp.LabelValidation, err.Error()))
		return
	}
	p, err := h.inv.CreateProduct(c.Request.Context(), service.ProductInput(in))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(gin.H{
		"message": "Product created successfully",
		"product": productView(p),
	}))
}

func (h *ProductHandler) UpdateForm(c *gin.Context) {
	p, err := h.inv.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	suppliers, err := h.inv.ListSuppliers(c.Request.Context())
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"product": productView(p), "suppliers": suppliers}))
}

func (h *ProductHandler) Update(c *gin.Context) {
	var in productReq
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(resp.LabelValidation, err.Error()))
		return
	}
	p, err := h.inv.UpdateProduct(c.Request.Context(), c.Param("id"), service.ProductInput(in))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": "Product updated successfully",
		"product": productView(p),
	}))
}

func (h *ProductHandler) DeleteForm(c *gin.Context) {
	p, err := h.inv.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"product": productView(p)}))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.inv.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"message": "Product deleted successfully"}))
}
