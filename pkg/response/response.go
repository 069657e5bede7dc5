package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/pkg/apperror"
)

// Error writes a standardized error response. Validation failures carry the
// per-field payload, everything else a single error message.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		slog.Error("internal error", "path", c.FullPath(), "err", err)
	}

	var fieldErrs apperror.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(code, gin.H{"errors": fieldErrs})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// AbortError is Error followed by aborting the handler chain.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
