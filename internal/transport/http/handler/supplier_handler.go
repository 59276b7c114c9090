package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-inventory/internal/service"
	resp "go-gin-inventory/internal/transport/http/response"
)

type SupplierHandler struct {
	inv *service.InventoryService
}

func NewSupplierHandler(inv *service.InventoryService) *SupplierHandler {
	return &SupplierHandler{inv: inv}
}

type supplierReq struct {
	Name    string `form:"name" json:"name"`
	Address string `form:"address" json:"address"`
	Phone   string `form:"phone" json:"phone"`
}

func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.inv.ListSuppliers(c.Request.Context())
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"suppliers": suppliers}))
}

func (h *SupplierHandler) Detail(c *gin.Context) {
	sup, products, err := h.inv.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"supplier": sup, "products": products}))
}

func (h *SupplierHandler) CreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, resp.OK(gin.H{"form": "supplier"}))
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var in supplierReq
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(resp.LabelValidation, err.Error()))
		return
	}
	sup, err := h.inv.CreateSupplier(c.Request.Context(), service.SupplierInput(in))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(gin.H{
		"message":  "Supplier created successfully",
		"supplier": sup,
	}))
}

func (h *SupplierHandler) UpdateForm(c *gin.Context) {
	sup, _, err := h.inv.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"supplier": sup}))
}

func (h *SupplierHandler) Update(c *gin.Context) {
	var in supplierReq
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(resp.LabelValidation, err.Error()))
		return
	}
	sup, err := h.inv.UpdateSupplier(c.Request.Context(), c.Param("id"), service.SupplierInput(in))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message":  "Supplier updated successfully",
		"supplier": sup,
	}))
}

// DeleteForm 删除确认页数据：供应商 + 挡路的商品清单
func (h *SupplierHandler) DeleteForm(c *gin.Context) {
	sup, products, err := h.inv.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"supplier":  sup,
		"products":  products,
		"canDelete": len(products) == 0,
	}))
}

// Delete 紧贴删除动作再查一次依赖（实际在仓储层单事务完成）
func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.inv.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
		resp.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"message": "Supplier deleted successfully"}))
}
