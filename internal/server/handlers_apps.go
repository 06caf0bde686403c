package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"appdeck/internal/apps"
	"appdeck/internal/models"
)

func (s *Server) listApps(c *gin.Context) {
	user := currentUser(c)
	list, err := s.registry.List(user.ID)
	if err != nil {
		s.internalError(c, "list apps", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createApp(c *gin.Context) {
	var req createAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "invalid request body",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}

	user := currentUser(c)
	app, err := s.registry.Create(user.ID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, apps.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, FieldErrors{"name": {"this field is required"}})
			return
		}
		s.internalError(c, "create app", err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (s *Server) getApp(c *gin.Context) {
	id, ok := s.appID(c)
	if !ok {
		return
	}
	user := currentUser(c)
	app, err := s.registry.Get(id, user.ID)
	if err != nil {
		s.appError(c, "get app", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (s *Server) updateApp(c *gin.Context) {
	id, ok := s.appID(c)
	if !ok {
		return
	}
	var req updateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "invalid request body",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}

	user := currentUser(c)
	app, err := s.registry.Update(id, user.ID, apps.Update{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, apps.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, FieldErrors{"name": {"this field may not be blank"}})
			return
		}
		s.appError(c, "update app", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (s *Server) deleteApp(c *gin.Context) {
	id, ok := s.appID(c)
	if !ok {
		return
	}
	user := currentUser(c)
	if err := s.registry.Delete(id, user.ID); err != nil {
		s.appError(c, "delete app", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) upsertSubscription(c *gin.Context) {
	id, ok := s.appID(c)
	if !ok {
		return
	}
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "invalid request body",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}

	user := currentUser(c)
	sub, err := s.subs.UpsertPlan(id, user.ID, models.PlanName(req.Plan))
	if err != nil {
		if errors.Is(err, models.ErrUnknownPlan) {
			c.JSON(http.StatusBadRequest, errorResponse{
				Error:     "plan must be one of FREE, STANDARD, PRO",
				ErrorCode: ErrorCodeValidation,
			})
			return
		}
		s.appError(c, "update subscription", err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (s *Server) deactivateSubscription(c *gin.Context) {
	id, ok := s.appID(c)
	if !ok {
		return
	}
	user := currentUser(c)
	sub, err := s.subs.Deactivate(id, user.ID)
	if err != nil {
		s.appError(c, "deactivate subscription", err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// appID parses the :id path segment. A non-numeric id behaves exactly like a
// missing resource.
func (s *Server) appID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		s.notFound(c)
		return 0, false
	}
	return uint(id), true
}

func (s *Server) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorResponse{
		Error:     "not found",
		ErrorCode: ErrorCodeNotFound,
	})
}

// appError maps registry/subscription errors onto HTTP responses. Unknown
// ids, foreign owners and missing subscriptions all collapse into 404.
func (s *Server) appError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, apps.ErrNotFound), errors.Is(err, apps.ErrNoSubscription):
		s.notFound(c)
	default:
		s.internalError(c, op, err)
	}
}
