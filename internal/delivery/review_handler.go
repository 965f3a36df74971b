package delivery

import (
	"net/http"

	"shop_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	reviews domain.ReviewRepository
	log     *logrus.Logger
}

func NewReviewHandler(reviews domain.ReviewRepository, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		log:     logger,
	}
}

func (h *ReviewHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/products/:id/reviews", h.ListReviews)
	router.POST("/products/:id/reviews", h.CreateReview)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID, ok := parseID(c, h.log, "product")
	if !ok {
		return
	}
	reviews, err := h.reviews.GetProductReviews(c.Request.Context(), productID)
	if err != nil {
		failWith(c, h.log, "list reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, h.log, "product")
	if !ok {
		return
	}
	var req domain.CreateReviewRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	created, err := h.reviews.CreateReview(c.Request.Context(), &domain.Review{
		ProductID: productID,
		UserID:    p.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		failWith(c, h.log, "create review", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
