package service

import (
	"context"
	"time"

	"agroio.app/models"
)

// UserRepositoryInterface defines the interface for user data operations
type UserRepositoryInterface interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	GetAll() ([]models.User, error)
}

// SessionRepositoryInterface defines the interface for session operations
type SessionRepositoryInterface interface {
	CreateSession(userID uint, ttl time.Duration) (*models.Session, error)
	FindByToken(token string) (*models.Session, error)
	DeleteSession(session *models.Session) error
	DeleteExpiredSessions() error
}

// TaskRepositoryInterface defines the interface for checklist data operations
type TaskRepositoryInterface interface {
	GetAll() ([]models.Task, error)
	FindByID(id uint) (*models.Task, error)
	Create(task *models.Task) error
	Update(task *models.Task) error
	Delete(id uint) error
}

// VegetableRepositoryInterface defines the interface for vegetable data operations
type VegetableRepositoryInterface interface {
	GetAll() ([]models.Vegetable, error)
	FindByID(id uint) (*models.Vegetable, error)
	FindByName(name string) (*models.Vegetable, error)
	FindByGenerationKey(generationKey string) (*models.Vegetable, error)
	Create(vegetable *models.Vegetable) error
	UpdateImageByKey(generationKey, imageURL string, state models.ImageState) error
}

// ContactRepositoryInterface defines the interface for address book operations
type ContactRepositoryInterface interface {
	GetAll() ([]models.Contact, error)
	FindByNameInsensitive(name string) (*models.Contact, error)
	Create(contact *models.Contact) error
	Update(contact *models.Contact) error
}

// TransactionRepositoryInterface defines the interface for movement data operations
type TransactionRepositoryInterface interface {
	GetAll() ([]models.Transaction, error)
	Create(transaction *models.Transaction) error
}

// HarvestRepositoryInterface defines the interface for harvest data operations
type HarvestRepositoryInterface interface {
	GetAll() ([]models.Harvest, error)
	ListByUnit(unit string) ([]models.Harvest, error)
	Create(harvest *models.Harvest) error
}

// MarketRepositoryInterface defines the interface for marketplace data operations
type MarketRepositoryInterface interface {
	GetByType(itemType string) ([]models.MarketItem, error)
	Create(item *models.MarketItem) error
}

// CommunityRepositoryInterface defines the interface for community data operations
type CommunityRepositoryInterface interface {
	GetPosts() ([]models.CommunityPost, error)
	CreatePost(post *models.CommunityPost) error
	GetPartnerStores() ([]models.PartnerStore, error)
	GetCommunityUsers() ([]models.CommunityUser, error)
}

// FaqRepositoryInterface defines the interface for FAQ data operations
type FaqRepositoryInterface interface {
	GetAll() ([]models.FaqItem, error)
}

// NotificationRepositoryInterface defines the interface for alert data operations
type NotificationRepositoryInterface interface {
	GetByUser(userID uint) ([]models.Notification, error)
	Create(notification *models.Notification) error
}

// CatalogRepositoryInterface defines the interface for reference catalog reads
type CatalogRepositoryInterface interface {
	GetVegetableInfos() ([]models.VegetableInfo, error)
	FindVegetableInfo(name string) (*models.VegetableInfo, error)
	GetFarmingSystems() ([]models.FarmingSystem, error)
}

// WeatherServiceInterface defines the interface for forecast operations
type WeatherServiceInterface interface {
	GetForecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherDay, error)
	GetSuggestions(ctx context.Context, latitude, longitude float64) ([]models.TaskSuggestion, error)
}

// UserServiceInterface defines the interface for account operations
type UserServiceInterface interface {
	Register(req *models.RegisterRequest) (*models.User, *models.Session, error)
	Login(email string) (*models.User, *models.Session, error)
	Logout(token string) error
	Authenticate(token string) (*models.User, error)
	ChangePlan(user *models.User, planName string) (*models.User, error)
	UpdateLocation(user *models.User, latitude, longitude float64) error
	GetPlanOffers() []models.PlanOffer
}

// Ensure implementations satisfy interfaces
var _ WeatherServiceInterface = (*WeatherService)(nil)
var _ UserServiceInterface = (*UserService)(nil)
