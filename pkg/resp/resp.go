// Package resp renders API responses. Successes return the payload as-is;
// failures always use the envelope {error, type, details?} with the HTTP
// status taken from the apperr taxonomy.
package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ValidationFailed is for request binding failures; the validator message
// goes into details so forms can route it to the offending field.
func ValidationFailed(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request body",
		"type":    apperr.TypeValidation,
		"details": gin.H{"cause": err.Error()},
	})
}

// Error maps err through the taxonomy. Internal errors are logged with the
// request path and returned as a generic 500 so backend detail never leaks.
func Error(c *gin.Context, log *zap.Logger, err error) {
	status, typeTag := apperr.HTTPStatus(err)
	if !apperr.IsOperational(err) {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": "internal server error", "type": typeTag})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "type": typeTag})
}
