package delivery

import (
	"errors"
	"net/http"
	"time"

	"shop_service/internal/domain"
	"shop_service/internal/middleware"
	"shop_service/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	auth     domain.UserUseCase
	sessions session.Store
	cfg      middleware.SessionConfig
	log      *logrus.Logger
}

func NewAuthHandler(auth domain.UserUseCase, sessions session.Store, cfg middleware.SessionConfig, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		cfg:      cfg,
		log:      logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
	router.GET("/user", h.CurrentUser)
}

func (h *AuthHandler) Register(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Register")
	var req domain.Credentials
	if !bindJSON(c, handlerLogger, &req) {
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			handlerLogger.Warnf("Registration rejected, username taken: %s", req.Username)
			ErrorResponse(c, http.StatusBadRequest, "Username already exists")
			return
		}
		failWith(c, handlerLogger, "register user", err)
		return
	}

	if !h.startSession(c, handlerLogger, user) {
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Login")
	var req domain.Credentials
	if !bindJSON(c, handlerLogger, &req) {
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failWith(c, handlerLogger, "authenticate", err)
		return
	}

	if !h.startSession(c, handlerLogger, user) {
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if id := middleware.SessionID(c); id != "" {
		if err := h.sessions.Destroy(c.Request.Context(), id); err != nil {
			failWith(c, h.log.WithField("handler", "Logout"), "destroy session", err)
			return
		}
	}
	h.setCookie(c, "", -1)
	c.Status(http.StatusOK)
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, domain.User{ID: p.ID, Username: p.Username, IsAdmin: p.IsAdmin})
}

// startSession replaces any session the request already had, so a login
// never reuses an id issued before authentication.
func (h *AuthHandler) startSession(c *gin.Context, log logrus.FieldLogger, user *domain.User) bool {
	ctx := c.Request.Context()
	if old := middleware.SessionID(c); old != "" {
		if err := h.sessions.Destroy(ctx, old); err != nil {
			log.Warnf("Failed to destroy previous session: %v", err)
		}
	}

	sess := session.New(user.ID, h.cfg.TTL, time.Now())
	if err := h.sessions.Save(ctx, sess); err != nil {
		failWith(c, log, "save session", err)
		return false
	}
	h.setCookie(c, sess.ID, int(h.cfg.TTL.Seconds()))
	log.Infof("Session started for user %d", user.ID)
	return true
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, value, maxAge, "/", "", h.cfg.Secure, true)
}
