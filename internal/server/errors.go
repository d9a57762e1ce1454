package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prompthub/api/internal/authz"
	rankingdomain "github.com/prompthub/api/internal/ranking/domain"
	templatedomain "github.com/prompthub/api/internal/template/domain"
	usagedomain "github.com/prompthub/api/internal/usage/domain"
	"github.com/prompthub/api/pkg/db"
	"go.uber.org/zap"
)

var errInvalidBody = errors.New("invalid request body")

var badRequestErrors = []error{
	errInvalidBody,
	templatedomain.ErrInvalidID,
	templatedomain.ErrInvalidFilter,
	templatedomain.ErrTitleRequired,
	templatedomain.ErrTitleTooLong,
	templatedomain.ErrDescriptionTooLong,
	usagedomain.ErrInvalidTemplateID,
	rankingdomain.ErrInvalidLimit,
}

var forbiddenErrors = []error{
	authz.ErrNotOwner,
	authz.ErrPrivate,
	authz.ErrPrivateUsage,
	authz.ErrPrivateClone,
}

// ErrorHandlingMiddleware translates errors attached to the gin context
// into the API's JSON error envelope. Handlers abort with an error and
// leave status selection to this middleware.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, message := mapError(err)
		if status == http.StatusInternalServerError {
			zap.L().Error("request failed",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		c.JSON(status, gin.H{"error": message})
	}
}

func mapError(err error) (int, string) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}
	for _, target := range forbiddenErrors {
		if errors.Is(err, target) {
			return http.StatusForbidden, target.Error()
		}
	}
	if errors.Is(err, templatedomain.ErrNotFound) {
		return http.StatusNotFound, templatedomain.ErrNotFound.Error()
	}
	if db.IsDuplicateKeyErr(err) {
		return http.StatusBadRequest, "duplicate resource"
	}
	return http.StatusInternalServerError, "internal server error"
}
