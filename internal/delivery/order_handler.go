package delivery

import (
	"net/http"

	"shop_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	orders domain.OrderRepository
	log    *logrus.Logger
}

func NewOrderHandler(orders domain.OrderRepository, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		log:    logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
	}
}

// ListOrders returns every order to admins and only the caller's own orders
// to everyone else.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}

	var (
		orders []domain.Order
		err    error
	)
	if p.IsAdmin {
		orders, err = h.orders.GetOrders(c.Request.Context())
	} else {
		orders, err = h.orders.GetUserOrders(c.Request.Context(), p.ID)
	}
	if err != nil {
		failWith(c, h.log, "list orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	var req domain.CreateOrderRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	if req.Status == "" {
		req.Status = domain.StatusPending
	}

	created, err := h.orders.CreateOrder(c.Request.Context(), &domain.Order{
		UserID: p.ID,
		Status: req.Status,
		Total:  req.Total,
		Items:  req.Items,
	})
	if err != nil {
		failWith(c, h.log, "create order", err)
		return
	}
	h.log.Infof("Order %d created for user %d", created.ID, created.UserID)
	c.JSON(http.StatusCreated, created)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	admin, ok := requireAdmin(c)
	if !ok {
		return
	}
	id, ok := parseID(c, h.log, "order")
	if !ok {
		return
	}
	var req domain.UpdateOrderStatusRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	updated, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		failWith(c, h.log, "update order status", err)
		return
	}
	h.log.Infof("Order %d status set to '%s' by admin %d", updated.ID, updated.Status, admin.ID)
	c.JSON(http.StatusOK, updated)
}
