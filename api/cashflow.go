package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "agroio.app/errors"
	"agroio.app/models"
)

func (s *Server) listTransactions(c *gin.Context) {
	transactions, err := s.cashFlowService.ListTransactions()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func (s *Server) addTransaction(c *gin.Context) {
	var req models.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	transaction, err := s.cashFlowService.AddTransaction(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func (s *Server) listContacts(c *gin.Context) {
	contacts, err := s.cashFlowService.ListContacts()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

func (s *Server) getCashFlowSummary(c *gin.Context) {
	summary, err := s.cashFlowService.GetSummary()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *Server) getAgenda(c *gin.Context) {
	agenda, err := s.cashFlowService.GetAgenda()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, agenda)
}

func (s *Server) getProductHistory(c *gin.Context) {
	transactionType := models.TransactionType(c.DefaultQuery("type", string(models.TransactionIncome)))

	history, err := s.cashFlowService.GetProductHistory(transactionType)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func (s *Server) getPerformanceChart(c *gin.Context) {
	chart, err := s.cashFlowService.GetPerformanceChart()
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, chart)
}
