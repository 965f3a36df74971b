package middleware

import (
	"errors"
	"net/http"
	"time"

	"shop_service/internal/domain"
	"shop_service/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	principalKey = "principal"
	sessionIDKey = "sessionID"
)

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session resolves the session cookie into a domain.Principal. Requests
// without a usable session pass through anonymously; the handlers decide
// whether that is acceptable. A failing session or user store aborts with 500.
func Session(store session.Store, users domain.UserRepository, cfg SessionConfig, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		sess, err := store.Get(ctx, id)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				log.Errorf("Middleware: Failed to load session: %v", err)
				abortInternal(c, err)
				return
			}
			c.Next()
			return
		}

		user, err := users.GetUser(ctx, sess.UserID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				log.Errorf("Middleware: Failed to load session user %d: %v", sess.UserID, err)
				abortInternal(c, err)
				return
			}
			log.Warnf("Middleware: Session %s... refers to missing user %d", id[:min(8, len(id))], sess.UserID)
			c.Next()
			return
		}

		SetPrincipal(c, user.Principal())
		c.Set(sessionIDKey, sess.ID)
		c.Next()
	}
}

// abortInternal matches the body the handlers send for store failures.
func abortInternal(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func SetPrincipal(c *gin.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// CurrentPrincipal returns the authenticated caller, if any.
func CurrentPrincipal(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok && p != nil
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
