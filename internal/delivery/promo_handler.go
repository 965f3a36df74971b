package delivery

import (
	"math/rand/v2"
	"net/http"

	"shop_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Picker returns an index in [0, n). n is always positive.
type Picker func(n int) int

var discounts = [...]int{5, 10, 15, 20}

type PromoHandler struct {
	products domain.ProductRepository
	pick     Picker
	log      *logrus.Logger
}

func NewPromoHandler(products domain.ProductRepository, pick Picker, logger *logrus.Logger) *PromoHandler {
	if pick == nil {
		pick = rand.IntN
	}
	return &PromoHandler{
		products: products,
		pick:     pick,
		log:      logger,
	}
}

func (h *PromoHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/spin-discount", h.SpinDiscount)
	router.GET("/surprise-product", h.SurpriseProduct)
}

func (h *PromoHandler) SpinDiscount(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	discount := discounts[h.pick(len(discounts))]
	h.log.Debugf("User %d spun a %d%% discount", p.ID, discount)
	c.JSON(http.StatusOK, gin.H{"discount": discount})
}

func (h *PromoHandler) SurpriseProduct(c *gin.Context) {
	products, err := h.products.GetProducts(c.Request.Context())
	if err != nil {
		failWith(c, h.log, "load products for surprise", err)
		return
	}
	if len(products) == 0 {
		ErrorResponse(c, http.StatusNotFound, "No products available")
		return
	}
	c.JSON(http.StatusOK, products[h.pick(len(products))])
}
