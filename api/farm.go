package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "agroio.app/errors"
	"agroio.app/models"
)

func (s *Server) getWeather(c *gin.Context) {
	user := currentUser(c)

	days, err := s.weatherService.GetForecast(c.Request.Context(), user.Latitude, user.Longitude)
	if err != nil {
		slog.Error("Forecast error", "error", err, "userID", user.ID)
		s.handleError(c, err)
		return
	}

	suggestions, err := s.weatherService.GetSuggestions(c.Request.Context(), user.Latitude, user.Longitude)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days, "suggestions": suggestions})
}

func (s *Server) getSuggestions(c *gin.Context) {
	user := currentUser(c)

	suggestions, err := s.weatherService.GetSuggestions(c.Request.Context(), user.Latitude, user.Longitude)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

func (s *Server) listTasks(c *gin.Context) {
	tasks, err := s.taskService.ListTasks()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (s *Server) addTask(c *gin.Context) {
	var req models.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	task, err := s.taskService.AddTask(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (s *Server) toggleTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	task, err := s.taskService.ToggleTask(id)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.taskService.DeleteTask(id); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (s *Server) listVegetables(c *gin.Context) {
	vegetables, err := s.vegetableService.ListVegetables()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, vegetables)
}

func (s *Server) addVegetable(c *gin.Context) {
	var req models.VegetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	vegetable, err := s.vegetableService.AddVegetable(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	// Accepted rather than Created: the catalog image is still being generated
	c.JSON(http.StatusAccepted, vegetable)
}

func (s *Server) getVegetable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	vegetable, err := s.vegetableService.FindByID(id)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, vegetable)
}

func (s *Server) listHarvests(c *gin.Context) {
	harvests, err := s.harvestService.ListHarvests()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, harvests)
}

func (s *Server) addHarvest(c *gin.Context) {
	var req models.HarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	harvest, err := s.harvestService.AddHarvest(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, harvest)
}

func (s *Server) getHarvestChart(c *gin.Context) {
	unit := c.DefaultQuery("unit", "kg")

	chart, err := s.harvestService.GetChart(unit)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, chart)
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid id parameter")
	}
	return uint(id), nil
}
