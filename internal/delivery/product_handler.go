package delivery

import (
	"net/http"

	"shop_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	products domain.ProductRepository
	log      *logrus.Logger
}

func NewProductHandler(products domain.ProductRepository, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		log:      logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.GetProducts(c.Request.Context())
	if err != nil {
		failWith(c, h.log, "list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, h.log, "product")
	if !ok {
		return
	}
	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, "get product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	admin, ok := requireAdmin(c)
	if !ok {
		return
	}
	var product domain.Product
	if !bindJSON(c, h.log, &product) {
		return
	}
	product.ID = 0

	created, err := h.products.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		failWith(c, h.log, "create product", err)
		return
	}
	h.log.Infof("Product created: ID %d, Name %s, by admin %d", created.ID, created.Name, admin.ID)
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	admin, ok := requireAdmin(c)
	if !ok {
		return
	}
	id, ok := parseID(c, h.log, "product")
	if !ok {
		return
	}
	var update domain.ProductUpdate
	if !bindJSON(c, h.log, &update) {
		return
	}
	if update.IsEmpty() {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: no fields provided for update")
		return
	}

	updated, err := h.products.UpdateProduct(c.Request.Context(), id, update)
	if err != nil {
		failWith(c, h.log, "update product", err)
		return
	}
	h.log.Infof("Product updated: ID %d, by admin %d", updated.ID, admin.ID)
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	admin, ok := requireAdmin(c)
	if !ok {
		return
	}
	id, ok := parseID(c, h.log, "product")
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		failWith(c, h.log, "delete product", err)
		return
	}
	h.log.Infof("Product deleted: ID %d, by admin %d", id, admin.ID)
	c.Status(http.StatusNoContent)
}
