package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agroio.app/api"
	"agroio.app/config"
	"agroio.app/database"
	"agroio.app/metrics"
	"agroio.app/models"
	"agroio.app/providers"
	"agroio.app/providers/cache"
	"agroio.app/repository"
	"agroio.app/service"
)

// forecastDay is one row of the columnar payload served by the mock
// Open-Meteo endpoint.
type forecastDay struct {
	Date        string
	WeatherCode int
	TempMax     float64
	TempMin     float64
	WindMax     float64
	Humidity    float64
	RainChance  float64
}

type IntegrationTestSuite struct {
	suite.Suite
	db          *gorm.DB
	router      *gin.Engine
	mockWeather *httptest.Server
	forecast    []forecastDay
	failWeather bool
}

func (s *IntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	s.mockWeather = httptest.NewServer(http.HandlerFunc(s.serveForecast))

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(database.RunMigrations(db))
	s.Require().NoError(database.Seed(db))

	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.Weather.BaseURL = s.mockWeather.URL
	cfg.Weather.ForecastDays = 7
	cfg.Weather.FallbackLatitude = 41.9028
	cfg.Weather.FallbackLongitude = 12.4964
	cfg.Weather.CacheTTLMinutes = 5
	cfg.Weather.EnableCache = false // every request hits the mock so tests can vary the forecast
	cfg.Cache.Type = "memory"
	cfg.Session.TTLHours = 168
	cfg.Scheduler.AlertIntervalMinutes = 60
	cfg.Scheduler.CleanupIntervalMinutes = 1440

	instrumentedCache := providers.NewInstrumentedCache(cache.NewMemoryCache(), "memory")
	forecastProvider := providers.NewOpenMeteoProvider(&cfg.Weather)
	aiProvider := providers.NewDisabledAIProvider()
	aiMetrics := metrics.NewAIMetrics()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	vegetableRepo := repository.NewVegetableRepository(db)

	server, err := api.NewServer(api.ServerOptions{
		Config:           cfg,
		UserService:      service.NewUserService(userRepo, sessionRepo, cfg),
		WeatherService:   service.NewWeatherService(forecastProvider, &cfg.Weather),
		TaskService:      service.NewTaskService(repository.NewTaskRepository(db)),
		VegetableService: service.NewVegetableService(vegetableRepo, aiProvider, aiMetrics),
		CashFlowService:  service.NewCashFlowService(repository.NewTransactionRepository(db), repository.NewContactRepository(db)),
		HarvestService:   service.NewHarvestService(repository.NewHarvestRepository(db), vegetableRepo),
		GardenService:    service.NewGardenDesignService(repository.NewCatalogRepository(db), aiProvider, aiMetrics),
		GardenerService:  service.NewGardenerService(aiProvider, aiMetrics),
		MarketService:    service.NewMarketService(repository.NewMarketRepository(db), aiProvider, aiMetrics),
		CommunityService: service.NewCommunityService(repository.NewCommunityRepository(db)),
		FaqService:       service.NewFaqService(repository.NewFaqRepository(db)),
		NotificationRepo: repository.NewNotificationRepository(db),
		ForecastMetrics:  instrumentedCache,
	})
	s.Require().NoError(err)

	s.router = server.GetRouter()
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.mockWeather != nil {
		s.mockWeather.Close()
	}
	if s.db != nil {
		_ = database.CloseDB(s.db)
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	s.forecast = nil
	s.failWeather = false
	s.db.Exec("DELETE FROM sessions")
	s.db.Exec("DELETE FROM users")
	s.db.Exec("DELETE FROM notifications")
}

// serveForecast renders the queued forecast in Open-Meteo's columnar shape
func (s *IntegrationTestSuite) serveForecast(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/health" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if s.failWeather {
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	daily := map[string]interface{}{}
	times := make([]string, 0, len(s.forecast))
	codes := make([]int, 0, len(s.forecast))
	tempsMax := make([]float64, 0, len(s.forecast))
	tempsMin := make([]float64, 0, len(s.forecast))
	winds := make([]float64, 0, len(s.forecast))
	humidities := make([]float64, 0, len(s.forecast))
	rains := make([]float64, 0, len(s.forecast))

	for _, day := range s.forecast {
		times = append(times, day.Date)
		codes = append(codes, day.WeatherCode)
		tempsMax = append(tempsMax, day.TempMax)
		tempsMin = append(tempsMin, day.TempMin)
		winds = append(winds, day.WindMax)
		humidities = append(humidities, day.Humidity)
		rains = append(rains, day.RainChance)
	}

	daily["time"] = times
	daily["weather_code"] = codes
	daily["temperature_2m_max"] = tempsMax
	daily["temperature_2m_min"] = tempsMin
	daily["wind_speed_10m_max"] = winds
	daily["relative_humidity_2m_mean"] = humidities
	daily["precipitation_probability_max"] = rains

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"daily": daily})
}

func (s *IntegrationTestSuite) queueForecast(days ...forecastDay) {
	s.forecast = days
}

func (s *IntegrationTestSuite) doRequest(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account on the given plan and returns the
// session token
func (s *IntegrationTestSuite) registerUser(email, planName string) string {
	w := s.doRequest("POST", "/api/register", "", map[string]interface{}{
		"name": "Mario", "surname": "Rossi", "street": "Via Roma 1",
		"city": "Roma", "province": "RM", "cap": "00100",
		"email": email, "plan": planName,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Require().NotEmpty(response.Token)
	return response.Token
}

func (s *IntegrationTestSuite) decodeJSON(w *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func futureDate(daysAhead int) string {
	return time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
