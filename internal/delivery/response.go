package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"shop_service/internal/domain"
	"shop_service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type errorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorBody{Error: message})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// failWith writes the status mapped from err. Store failures are logged in
// full but only reported to the client generically.
func failWith(c *gin.Context, log logrus.FieldLogger, action string, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		log.Errorf("Failed to %s: %v", action, err)
		_ = c.Error(err)
		ErrorResponse(c, status, "Internal server error")
		return
	}
	log.Warnf("Failed to %s: %v", action, err)
	ErrorResponse(c, status, err.Error())
}

// requireUser answers 401 when the request carries no valid session.
func requireUser(c *gin.Context) (*domain.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return p, true
}

// requireAdmin answers 403 for anyone who is not an admin, including
// anonymous callers.
func requireAdmin(c *gin.Context) (*domain.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok || !p.IsAdmin {
		ErrorResponse(c, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return p, true
}

func parseID(c *gin.Context, log logrus.FieldLogger, what string) (int, bool) {
	idStr := c.Param("id")
	// ids are SERIAL columns, so anything past int32 can never exist.
	id, err := strconv.ParseInt(idStr, 10, 32)
	if err != nil || id <= 0 {
		log.Warnf("Invalid %s ID parameter: %s", what, idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid "+what+" ID format")
		return 0, false
	}
	return int(id), true
}

func bindJSON(c *gin.Context, log logrus.FieldLogger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Warnf("Failed to bind request body: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
