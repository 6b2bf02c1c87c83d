package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agroio.app/models"
)

func (s *IntegrationTestSuite) TestRegisterLoginLogout() {
	email := uniqueEmail("account")
	token := s.registerUser(email, "Gratis")

	w := s.doRequest("GET", "/api/me", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var profile models.User
	s.decodeJSON(w, &profile)
	s.Equal(email, profile.Email)
	s.Equal("Mario", profile.Name)

	// logging in again issues a fresh session
	w = s.doRequest("POST", "/api/login", "", map[string]string{"email": email})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	s.decodeJSON(w, &login)
	s.NotEmpty(login.Token)
	s.NotEqual(token, login.Token)

	w = s.doRequest("POST", "/api/logout", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.doRequest("GET", "/api/me", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	// the second session survives the first one's logout
	w = s.doRequest("GET", "/api/me", login.Token, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *IntegrationTestSuite) TestRegisterValidation() {
	w := s.doRequest("POST", "/api/register", "", map[string]string{
		"name": "Mario", "email": "incomplete@example.com",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	email := uniqueEmail("duplicate")
	s.registerUser(email, "Gratis")

	w = s.doRequest("POST", "/api/register", "", map[string]interface{}{
		"name": "Mario", "surname": "Rossi", "street": "Via Roma 1",
		"city": "Roma", "province": "RM", "cap": "00100",
		"email": email, "plan": "Gratis",
	})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *IntegrationTestSuite) TestPlanGatingAndUpgrade() {
	token := s.registerUser(uniqueEmail("gating"), "Gratis")

	// Gratis can use the checklist but not the Pro and Business features
	w := s.doRequest("GET", "/api/tasks", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.doRequest("GET", "/api/harvests", token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.doRequest("GET", "/api/cashflow/summary", token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.doRequest("POST", "/api/me/plan", token, map[string]string{"plan": "Pro"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// Pro unlocks harvests but the designer stays Business only
	w = s.doRequest("GET", "/api/harvests", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.doRequest("POST", "/api/garden", token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.doRequest("POST", "/api/me/plan", token, map[string]string{"plan": "Business"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.doRequest("POST", "/api/garden", token, nil)
	s.Equal(http.StatusCreated, w.Code)

	// downgrades are allowed and take effect immediately
	w = s.doRequest("POST", "/api/me/plan", token, map[string]string{"plan": "Gratis"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.doRequest("GET", "/api/harvests", token, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *IntegrationTestSuite) TestTaskLifecycle() {
	token := s.registerUser(uniqueEmail("tasks"), "Gratis")

	w := s.doRequest("POST", "/api/tasks", token, map[string]string{
		"title": "Potare le viti", "dueDate": futureDate(3), "category": "Weekly",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task models.Task
	s.decodeJSON(w, &task)
	s.Equal("Potare le viti", task.Title)
	s.False(task.Completed)

	taskPath := fmt.Sprintf("/api/tasks/%d", task.ID)

	w = s.doRequest("POST", taskPath+"/toggle", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decodeJSON(w, &task)
	s.True(task.Completed)

	w = s.doRequest("DELETE", taskPath, token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.doRequest("DELETE", taskPath, token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *IntegrationTestSuite) TestVegetableImageFallback() {
	token := s.registerUser(uniqueEmail("vegetables"), "Gratis")

	w := s.doRequest("POST", "/api/vegetables", token, map[string]string{
		"name": "Peperone Rosso", "plantingDate": futureDate(0), "status": "Seedling",
	})
	s.Require().Equal(http.StatusAccepted, w.Code, w.Body.String())

	var vegetable models.Vegetable
	s.decodeJSON(w, &vegetable)
	s.Equal(models.ImagePending, vegetable.ImageState)

	vegetablePath := fmt.Sprintf("/api/vegetables/%d", vegetable.ID)

	// the generator is disabled, so the stock photo fallback must land
	s.Require().Eventually(func() bool {
		w := s.doRequest("GET", vegetablePath, token, nil)
		if w.Code != http.StatusOK {
			return false
		}
		var current models.Vegetable
		if err := json.Unmarshal(w.Body.Bytes(), &current); err != nil {
			return false
		}
		return current.ImageState == models.ImageFailed && current.ImageURL != ""
	}, 5*time.Second, 50*time.Millisecond)

	w = s.doRequest("GET", vegetablePath, token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decodeJSON(w, &vegetable)
	s.Contains(vegetable.ImageURL, "loremflickr.com")
}

func (s *IntegrationTestSuite) TestHarvestRecordingAndChart() {
	token := s.registerUser(uniqueEmail("harvests"), "Pro")

	w := s.doRequest("GET", "/api/vegetables", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var vegetables []models.Vegetable
	s.decodeJSON(w, &vegetables)
	s.Require().NotEmpty(vegetables)

	today := time.Now().Format("2006-01-02")
	w = s.doRequest("POST", "/api/harvests", token, map[string]interface{}{
		"vegetableId": vegetables[0].ID, "date": today, "quantity": 3.5, "unit": "kg",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var harvest models.Harvest
	s.decodeJSON(w, &harvest)
	s.Equal(vegetables[0].Name, harvest.VegetableName)

	w = s.doRequest("POST", "/api/harvests", token, map[string]interface{}{
		"vegetableId": 99999, "date": today, "quantity": 1, "unit": "kg",
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.doRequest("GET", "/api/harvests/chart?unit=kg", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var chart models.HarvestChart
	s.decodeJSON(w, &chart)
	s.Equal("kg", chart.Unit)
	s.Require().Len(chart.Months, 12)
	s.GreaterOrEqual(chart.Months[11].Total, 3.5)

	w = s.doRequest("GET", "/api/harvests/chart?unit=tonnellate", token, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *IntegrationTestSuite) TestGardenWizard() {
	token := s.registerUser(uniqueEmail("garden"), "Business")

	w := s.doRequest("POST", "/api/garden", token, nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	var draft models.GardenDraft
	s.decodeJSON(w, &draft)
	s.Require().NotEmpty(draft.ID)
	s.Equal(1, draft.Step)

	selectURL := "/api/garden/" + draft.ID + "/select"

	// unknown farming system is rejected and the wizard does not advance
	w = s.doRequest("POST", selectURL, token, map[string]string{"farmingSystem": "Idroponica Lunare"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.doRequest("POST", selectURL, token, map[string]string{"farmingSystem": "Agricoltura Biologica"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decodeJSON(w, &draft)
	s.Equal(2, draft.Step)

	w = s.doRequest("POST", selectURL, token, map[string]string{"cultivationType": "In piena terra"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.doRequest("POST", selectURL, token, map[string]string{"sunExposure": "Pieno sole"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.doRequest("POST", selectURL, token, map[string]interface{}{"plants": []string{"Pomodoro", "Basilico"}})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.doRequest("POST", selectURL, token, map[string]string{"width": "4", "length": "6"})
	s.Require().Equal(http.StatusOK, w.Code)

	// going back preserves the earlier choices
	w = s.doRequest("POST", "/api/garden/"+draft.ID+"/back", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decodeJSON(w, &draft)
	s.Equal(5, draft.Step)
	s.Equal("Agricoltura Biologica", draft.FarmingSystem)
	s.Equal([]string{"Pomodoro", "Basilico"}, draft.SelectedPlants)

	w = s.doRequest("POST", selectURL, token, map[string]string{"width": "4", "length": "6"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.doRequest("POST", selectURL, token, map[string]interface{}{"skipPhoto": true})
	s.Require().Equal(http.StatusOK, w.Code)
	s.decodeJSON(w, &draft)
	s.Equal(7, draft.Step)

	// the planner is disabled, so generation reports the AI outage
	w = s.doRequest("POST", "/api/garden/"+draft.ID+"/generate", token, nil)
	s.Equal(http.StatusBadGateway, w.Code)

	w = s.doRequest("POST", "/api/garden/"+draft.ID+"/reset", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decodeJSON(w, &draft)
	s.Equal(1, draft.Step)
	s.Empty(draft.FarmingSystem)

	w = s.doRequest("GET", "/api/garden/no-such-draft", token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *IntegrationTestSuite) TestMarketplace() {
	token := s.registerUser(uniqueEmail("market"), "Pro")

	w := s.doRequest("GET", "/api/market/items?type=produce", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var items []models.MarketItem
	s.decodeJSON(w, &items)
	for _, item := range items {
		s.Equal("produce", item.Type)
	}

	w = s.doRequest("POST", "/api/market/items", token, map[string]interface{}{
		"type": "equipment", "name": "Decespugliatore Stihl", "price": 180.0,
		"location": "Torino", "condition": "Buono Stato", "generateImage": true,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var item models.MarketItem
	s.decodeJSON(w, &item)
	s.Equal("Decespugliatore Stihl", item.Name)
	s.Equal("Mario Rossi", item.Seller)
	// image generation is disabled, the listing falls back to a stock photo
	s.Contains(item.ImageURL, "loremflickr.com")

	w = s.doRequest("GET", "/api/market/items?type=animals", token, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *IntegrationTestSuite) TestCommunityAndFaq() {
	token := s.registerUser(uniqueEmail("community"), "Pro")

	w := s.doRequest("POST", "/api/community/posts", token, map[string]string{
		"content": "Qualcuno coltiva zafferano in pianura padana?",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.doRequest("GET", "/api/community/posts", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var posts []models.CommunityPost
	s.decodeJSON(w, &posts)

	found := false
	for _, post := range posts {
		if strings.Contains(post.Content, "zafferano") {
			found = true
		}
	}
	s.True(found)

	w = s.doRequest("GET", "/api/community/stores", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var stores []models.PartnerStore
	s.decodeJSON(w, &stores)
	s.NotEmpty(stores)

	w = s.doRequest("GET", "/api/faq?q=meteo", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var faqs []models.FaqItem
	s.decodeJSON(w, &faqs)
	s.Require().NotEmpty(faqs)
	for _, faq := range faqs {
		text := strings.ToLower(faq.Question + " " + faq.Answer)
		s.Contains(text, "meteo")
	}
}

func (s *IntegrationTestSuite) TestPlanCatalog() {
	w := s.doRequest("GET", "/api/plans", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var offers []models.PlanOffer
	s.decodeJSON(w, &offers)
	s.Require().Len(offers, 3)
	s.Equal(0.0, offers[0].Price)
}
