package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "agroio.app/errors"
	"agroio.app/models"
)

func (s *Server) getPlans(c *gin.Context) {
	c.JSON(http.StatusOK, s.userService.GetPlanOffers())
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	slog.Debug("Registration request received", "email", req.Email, "plan", req.Plan)

	user, session, err := s.userService.Register(&req)
	if err != nil {
		slog.Error("Registration error", "error", err, "email", req.Email)
		s.handleError(c, err)
		return
	}

	slog.Debug("Registration successful", "email", user.Email, "userID", user.ID)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": session.Token})
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	user, session, err := s.userService.Login(req.Email)
	if err != nil {
		slog.Error("Login error", "error", err, "email", req.Email)
		s.handleError(c, err)
		return
	}

	slog.Debug("Login successful", "email", user.Email, "userID", user.ID)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": session.Token})
}

func (s *Server) logout(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer"))

	if err := s.userService.Logout(token); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) changePlan(c *gin.Context) {
	var req struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	user, err := s.userService.ChangePlan(currentUser(c), req.Plan)
	if err != nil {
		s.handleError(c, err)
		return
	}

	slog.Debug("Plan changed", "userID", user.ID, "plan", req.Plan)
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateLocation(c *gin.Context) {
	var req struct {
		Latitude  float64 `json:"lat"`
		Longitude float64 `json:"lng"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	user := currentUser(c)
	if err := s.userService.UpdateLocation(user, req.Latitude, req.Longitude); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) getNotifications(c *gin.Context) {
	notifications, err := s.notificationRepo.GetByUser(currentUser(c).ID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}
