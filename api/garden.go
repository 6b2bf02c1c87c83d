package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "agroio.app/errors"
	"agroio.app/models"
)

func (s *Server) startGardenDraft(c *gin.Context) {
	c.JSON(http.StatusCreated, s.gardenService.StartDraft())
}

func (s *Server) getGardenDraft(c *gin.Context) {
	draft, err := s.gardenService.GetDraft(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (s *Server) selectGardenStep(c *gin.Context) {
	var req models.GardenSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	draft, err := s.gardenService.Select(c.Param("id"), &req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (s *Server) gardenBack(c *gin.Context) {
	draft, err := s.gardenService.Back(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (s *Server) gardenReset(c *gin.Context) {
	draft, err := s.gardenService.Reset(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (s *Server) generateGardenPlan(c *gin.Context) {
	id := c.Param("id")
	slog.Debug("Generating garden plan", "draftID", id)

	result, err := s.gardenService.Generate(c.Request.Context(), id)
	if err != nil {
		slog.Error("Garden plan generation error", "error", err, "draftID", id)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) diagnosePlant(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		s.handleError(c, apperrors.NewValidationError("image file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.handleError(c, apperrors.NewValidationError("unable to read uploaded image"))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		s.handleError(c, apperrors.NewValidationError("unable to read uploaded image"))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	report, err := s.gardenerService.DiagnosePlant(c.Request.Context(), image, mimeType)
	if err != nil {
		slog.Error("Plant diagnosis error", "error", err, "size", len(image))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (s *Server) listMarketItems(c *gin.Context) {
	items, err := s.marketService.ListItems(c.DefaultQuery("type", "equipment"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (s *Server) publishMarketItem(c *gin.Context) {
	var req models.MarketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	item, err := s.marketService.PublishItem(c.Request.Context(), &req, currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}
