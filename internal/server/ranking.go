package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	rankingdomain "github.com/prompthub/api/internal/ranking/domain"
)

func (s *Server) GetWeeklyRanking(c *gin.Context) {
	limit := rankingdomain.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(rankingdomain.ErrInvalidLimit)
			c.Abort()
			return
		}
		limit = parsed
	}

	entries, err := s.rankingSvc.Weekly(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, entries)
}
