package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prompthub/api/internal/authtoken"
	templatedomain "github.com/prompthub/api/internal/template/domain"
)

func (s *Server) ListTemplates(c *gin.Context) {
	principal, ok := authtoken.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	templates, err := s.tmplSvc.List(c.Request.Context(), principal, c.Query("filter"))
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, templates)
}

func (s *Server) GetTemplateByID(c *gin.Context) {
	principal, ok := authtoken.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	tmpl, err := s.tmplSvc.GetByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, tmpl)
}

func (s *Server) CreateTemplate(c *gin.Context) {
	principal, ok := authtoken.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req templatedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errInvalidBody)
		c.Abort()
		return
	}

	tmpl, err := s.tmplSvc.Create(c.Request.Context(), principal, req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, tmpl)
}

func (s *Server) UpdateTemplate(c *gin.Context) {
	principal, ok := authtoken.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req templatedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errInvalidBody)
		c.Abort()
		return
	}

	tmpl, err := s.tmplSvc.Update(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, tmpl)
}

func (s *Server) DeleteTemplate(c *gin.Context) {
	principal, ok := authtoken.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	if err := s.tmplSvc.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) CloneTemplate(c *gin.Context) {
	principal, ok := authtoken.PrincipalFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	tmpl, err := s.tmplSvc.Clone(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, tmpl)
}
