package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prompthub/api/internal/authtoken"
	usagedomain "github.com/prompthub/api/internal/usage/domain"
)

func (s *Server) RecordUsage(c *gin.Context) {
	principal, ok := authtoken.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req usagedomain.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errInvalidBody)
		c.Abort()
		return
	}

	event, err := s.usageSvc.Record(c.Request.Context(), principal, req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, event)
}
