package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-crud-portal/internal/domain"
	"go-crud-portal/internal/service"
	resp "go-crud-portal/internal/transport/http/response"
)

type ProductHandler struct{ svc *service.ProductService }

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) MountAPI(public, admin *gin.RouterGroup) {
	public.GET("/products", h.list)
	public.GET("/products/search", h.searchByName)
	public.GET("/products/price", h.priceBetween)
	public.GET("/products/stock", h.stockGreaterThan)
	public.GET("/products/available", h.availableAbovePrice)
	public.GET("/products/keyword", h.searchKeyword)
	public.GET("/products/in-stock", h.withStockAbove)
	public.GET("/products/:id", h.getByID)
	admin.POST("/products", h.create)
	admin.PUT("/products/:id", h.update)
	admin.DELETE("/products/:id", h.delete)
}

func (h *ProductHandler) list(c *gin.Context) {
	ps, err := h.svc.List(c.Request.Context())
	h.reply(c, ps, err)
}

func (h *ProductHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid id"))
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "product not found"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(p))
}

func (h *ProductHandler) searchByName(c *gin.Context) {
	ps, err := h.svc.SearchByName(c.Request.Context(), c.Query("name"))
	h.reply(c, ps, err)
}

func (h *ProductHandler) priceBetween(c *gin.Context) {
	var in struct {
		Min float64 `form:"min"`
		Max float64 `form:"max"`
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	ps, err := h.svc.PriceBetween(c.Request.Context(), in.Min, in.Max)
	h.reply(c, ps, err)
}

func (h *ProductHandler) stockGreaterThan(c *gin.Context) {
	var in struct {
		Min int `form:"min"`
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	ps, err := h.svc.StockGreaterThan(c.Request.Context(), in.Min)
	h.reply(c, ps, err)
}

func (h *ProductHandler) availableAbovePrice(c *gin.Context) {
	var in struct {
		MinPrice float64 `form:"min_price"`
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	ps, err := h.svc.AvailableAbovePrice(c.Request.Context(), in.MinPrice)
	h.reply(c, ps, err)
}

func (h *ProductHandler) searchKeyword(c *gin.Context) {
	ps, err := h.svc.SearchKeyword(c.Request.Context(), c.Query("q"))
	h.reply(c, ps, err)
}

func (h *ProductHandler) withStockAbove(c *gin.Context) {
	var in struct {
		Min int `form:"min"`
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	ps, err := h.svc.WithStockAbove(c.Request.Context(), in.Min)
	h.reply(c, ps, err)
}

type productIn struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (h *ProductHandler) create(c *gin.Context) {
	var in productIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	p, err := h.svc.Create(c.Request.Context(), domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.OK(p))
}

func (h *ProductHandler) update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid id"))
		return
	}
	var in productIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	existing, err := h.svc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "product not found"))
		return
	}
	existing.Name = in.Name
	existing.Description = in.Description
	existing.Price = in.Price
	existing.Stock = in.Stock
	p, err := h.svc.Update(c.Request.Context(), *existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.OK(p))
}

func (h *ProductHandler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
}

func (h *ProductHandler) reply(c *gin.Context, ps []domain.Product, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	if ps == nil {
		ps = []domain.Product{}
	}
	c.JSON(http.StatusOK, resp.OK(ps))
}
