package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quokkabay/quokkabay/internal/middleware"
	"github.com/quokkabay/quokkabay/internal/modules/serializer"
	"github.com/quokkabay/quokkabay/internal/modules/service"
)

// respondErr maps a service error onto its status and body. The error is also attached to
// the gin context so the request logger records it.
func respondErr(c *gin.Context, err error) {
	_ = c.Error(err)

	var storeErr *service.StoreError
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
	case errors.Is(err, service.ErrSurveyNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(err.Error()))
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), nil))
	case service.IsGeneration(err):
		c.JSON(http.StatusInternalServerError, serializer.GenerationErr())
	case errors.As(err, &storeErr):
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", storeErr))
	default:
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "internal error", err))
	}
}

// currentUser returns the caller resolved by the auth middleware, writing 401 when absent.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return uuid.Nil, false
	}
	return id.UserID, true
}
