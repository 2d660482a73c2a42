package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/service"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// abortWith writes msg for server errors and the error text otherwise, so
// internals never leak on a 500.
func abortWith(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
