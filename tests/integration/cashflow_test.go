package integration

import (
	"net/http"
	"strings"
	"time"

	"agroio.app/models"
)

func containsContact(contacts []models.Contact, name string) bool {
	for _, contact := range contacts {
		if contact.Name == name {
			return true
		}
	}
	return false
}

func lower(s string) string { return strings.ToLower(s) }

func (s *IntegrationTestSuite) TestCashFlowBookkeeping() {
	token := s.registerUser(uniqueEmail("cashflow"), "Business")

	w := s.doRequest("GET", "/api/cashflow/summary", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var before models.CashFlowSummary
	s.decodeJSON(w, &before)

	today := time.Now().Format("2006-01-02")

	w = s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": today, "description": "Vendita miele di castagno", "amount": 120.0,
		"type": "income", "category": "Vendite", "contactName": "Apicoltura Ferri",
		"quantity": 15.0, "unit": "kg",
		"newContact": map[string]string{
			"name": "Apicoltura Ferri", "phone": "0551234567", "email": "info@apicolturaferri.it",
		},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": today, "description": "Acquisto arnie", "amount": 300.0,
		"type": "expense", "category": "Attrezzature", "contactName": "Apicoltura Ferri",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doRequest("GET", "/api/cashflow/summary", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var after models.CashFlowSummary
	s.decodeJSON(w, &after)
	s.InDelta(before.TotalIncome+120, after.TotalIncome, 0.001)
	s.InDelta(before.TotalExpense+300, after.TotalExpense, 0.001)
	s.InDelta(after.TotalIncome-after.TotalExpense, after.Balance, 0.001)

	// the new contact now appears among both customers and suppliers
	s.True(containsContact(after.Customers, "Apicoltura Ferri"))
	s.True(containsContact(after.Suppliers, "Apicoltura Ferri"))
}

func (s *IntegrationTestSuite) TestCashFlowValidation() {
	token := s.registerUser(uniqueEmail("cashflow-validation"), "Business")

	today := time.Now().Format("2006-01-02")

	w := s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": today, "description": "Importo negativo", "amount": -10.0,
		"type": "income", "category": "Vendite", "contactName": "Qualcuno",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": "31-12-2024", "description": "Data nel formato sbagliato", "amount": 10.0,
		"type": "income", "category": "Vendite", "contactName": "Qualcuno",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": today, "description": "Direzione sconosciuta", "amount": 10.0,
		"type": "transfer", "category": "Vendite", "contactName": "Qualcuno",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.doRequest("GET", "/api/cashflow/history?type=donation", token, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *IntegrationTestSuite) TestCashFlowAgenda() {
	token := s.registerUser(uniqueEmail("agenda"), "Business")

	today := time.Now().Format("2006-01-02")

	w := s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": today, "description": "Vendita confetture", "amount": 80.0,
		"type": "income", "category": "Vendite", "contactName": "Bottega Zanetti",
		"newContact": map[string]string{
			"name": "Bottega Zanetti", "phone": "0291122334", "email": "ordini@bottegazanetti.it",
		},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": today, "description": "Acquisto vasetti", "amount": 30.0,
		"type": "expense", "category": "Forniture", "contactName": "Bottega Zanetti",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doRequest("GET", "/api/cashflow/agenda", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var agenda []models.AgendaContact
	s.decodeJSON(w, &agenda)

	var zanetti *models.AgendaContact
	for i := range agenda {
		if agenda[i].Name == "Bottega Zanetti" {
			zanetti = &agenda[i]
		}
	}
	s.Require().NotNil(zanetti)
	s.InDelta(50.0, zanetti.TotalAmount, 0.001)
	s.Equal(2, zanetti.TransactionCount)
	s.Equal("0291122334", zanetti.Phone)

	// the agenda is sorted by name ignoring case
	for i := 1; i < len(agenda); i++ {
		s.LessOrEqual(lower(agenda[i-1].Name), lower(agenda[i].Name))
	}
}

func (s *IntegrationTestSuite) TestCashFlowProductHistory() {
	token := s.registerUser(uniqueEmail("history"), "Business")

	today := time.Now().Format("2006-01-02")

	// same product spelled differently groups under one entry
	w := s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": today, "description": "Marmellata di fichi", "amount": 40.0,
		"type": "income", "category": "Vendite", "contactName": "Mercato Agricolo Locale",
		"quantity": 10.0, "unit": "kg",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": today, "description": "  marmellata di fichi ", "amount": 20.0,
		"type": "income", "category": "Vendite", "contactName": "Ristorante La Cascina",
		"quantity": 5.0, "unit": "kg",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doRequest("GET", "/api/cashflow/history?type=income", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var history []models.ProductHistoryItem
	s.decodeJSON(w, &history)

	var item *models.ProductHistoryItem
	for i := range history {
		if history[i].ProductName == "Marmellata di fichi" {
			item = &history[i]
		}
	}
	s.Require().NotNil(item)
	s.Equal(2, item.TransactionCount)
	s.InDelta(60.0, item.TotalAmount, 0.001)
	s.InDelta(15.0, item.TotalQuantity, 0.001)
	s.Equal("kg", item.Unit)
	s.InDelta(4.0, item.AveragePricePerUnit, 0.001)
	s.ElementsMatch([]string{"Mercato Agricolo Locale", "Ristorante La Cascina"}, item.Contacts)
}

func (s *IntegrationTestSuite) TestCashFlowPerformanceChart() {
	token := s.registerUser(uniqueEmail("chart"), "Business")

	today := time.Now().Format("2006-01-02")

	w := s.doRequest("POST", "/api/transactions", token, map[string]interface{}{
		"date": today, "description": "Vendita olio nuovo", "amount": 250.0,
		"type": "income", "category": "Vendite", "contactName": "Frantoio Belli",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.doRequest("GET", "/api/cashflow/chart", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var chart models.PerformanceChart
	s.decodeJSON(w, &chart)
	s.Require().Len(chart.Months, 6)
	s.GreaterOrEqual(chart.Months[5].Income, 250.0)
	s.GreaterOrEqual(chart.MaxAmount, chart.Months[5].Income)
}
