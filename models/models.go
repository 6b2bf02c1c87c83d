// Package models defines data structures used throughout the application
package models

import (
	"time"

	"gorm.io/gorm"

	"agroio.app/plan"
)

// TransactionType separates money coming in from money going out
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// WeatherCondition is the simplified sky state shown to farmers
type WeatherCondition string

const (
	ConditionSunny  WeatherCondition = "Sunny"
	ConditionCloudy WeatherCondition = "Cloudy"
	ConditionRain   WeatherCondition = "Rain"
	ConditionWindy  WeatherCondition = "Windy"
)

// VegetableStatus tracks a crop through its growth stages
type VegetableStatus string

const (
	StatusSeedling    VegetableStatus = "Seedling"
	StatusGrowing     VegetableStatus = "Growing"
	StatusFlowering   VegetableStatus = "Flowering"
	StatusHarvestable VegetableStatus = "Harvestable"
)

// ImageState tracks the asynchronous catalog image generation of a vegetable
type ImageState string

const (
	ImagePending ImageState = "pending"
	ImageReady   ImageState = "ready"
	ImageFailed  ImageState = "failed"
)

// User represents a registered farmer
type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"not null"`
	Surname        string         `json:"surname" gorm:"not null"`
	Email          string         `json:"email" gorm:"uniqueIndex;not null"`
	Address        string         `json:"address" gorm:"not null"`
	Company        string         `json:"company,omitempty"`
	Specialization string         `json:"specialization,omitempty"`
	Website        string         `json:"website,omitempty"`
	Plan           *plan.Plan     `json:"plan,omitempty" gorm:"type:varchar(16)"`
	Latitude       float64        `json:"lat"`
	Longitude      float64        `json:"lng"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// Session represents an authenticated session restored by its token
type Session struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Token     string         `json:"token" gorm:"uniqueIndex;not null"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	User      User           `json:"-" gorm:"foreignKey:UserID"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Task is a checklist entry
type Task struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title" gorm:"not null"`
	DueDate   time.Time      `json:"dueDate"`
	Completed bool           `json:"completed" gorm:"default:false"`
	Category  string         `json:"category" gorm:"not null"` // "Daily", "Weekly" or "General"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Vegetable is a crop currently tracked in the user's garden
type Vegetable struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"not null"`
	PlantingDate  time.Time       `json:"plantingDate"`
	Status        VegetableStatus `json:"status" gorm:"not null"`
	ImageURL      string          `json:"imageUrl"`
	ImageState    ImageState      `json:"imageState" gorm:"default:ready"`
	GenerationKey string          `json:"-" gorm:"index"` // correlates async image results
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}

// VegetableInfo is a reference-catalog entry used by the garden designer
type VegetableInfo struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"uniqueIndex;not null"`
	Family        string `json:"family"`
	Exposure      string `json:"exposure"`
	Watering      string `json:"watering"`
	SpacingPlants int    `json:"spacingPlants"` // cm between plants
	SpacingRows   int    `json:"spacingRows"`   // cm between rows
	Sowing        string `json:"sowing"`
	Harvest       string `json:"harvest"`
	Companions    string `json:"companions"`
	Avoid         string `json:"avoid"`
	Yield         string `json:"yield"`
}

// FarmingSystem describes a cultivation philosophy offered by the designer
type FarmingSystem struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"uniqueIndex;not null"`
	Description   string `json:"description"`
	Advantages    string `json:"advantages"`    // semicolon separated
	Disadvantages string `json:"disadvantages"` // semicolon separated
}

// Contact is an entry in the cash-flow address book
type Contact struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Phone     string         `json:"phone,omitempty"`
	Email     string         `json:"email,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Transaction is a single cash-flow movement
type Transaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Date        time.Time       `json:"date" gorm:"index"`
	Description string          `json:"description" gorm:"not null"`
	Amount      float64         `json:"amount" gorm:"not null"`
	Type        TransactionType `json:"type" gorm:"not null"`
	Category    string          `json:"category" gorm:"not null"`
	ContactName string          `json:"contactName" gorm:"not null"`
	Quantity    *float64        `json:"quantity,omitempty"`
	Unit        string          `json:"unit,omitempty"` // "kg", "l" or "unità"
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// Harvest records a quantity picked from a tracked vegetable
type Harvest struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	VegetableID   uint           `json:"vegetableId" gorm:"index;not null"`
	VegetableName string         `json:"vegetableName" gorm:"not null"`
	Date          time.Time      `json:"date" gorm:"index"`
	Quantity      float64        `json:"quantity" gorm:"not null"`
	Unit          string         `json:"unit" gorm:"not null"` // "kg", "g" or "pezzi"
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// MarketItem is a marketplace listing for used equipment or fresh produce
type MarketItem struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Type        string         `json:"type" gorm:"not null"` // "equipment" or "produce"
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	ImageURL    string         `json:"imageUrl"`
	Seller      string         `json:"seller"`
	Location    string         `json:"location"`
	Condition   string         `json:"condition,omitempty"` // "Come Nuovo", "Buono Stato" or "Da Revisionare"
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// CommunityPost is a message on the community board
type CommunityPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Author    string    `json:"author" gorm:"not null"`
	AvatarURL string    `json:"avatarUrl"`
	Content   string    `json:"content" gorm:"not null"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Likes     int       `json:"likes" gorm:"default:0"`
	Comments  int       `json:"comments" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// PartnerStore is an affiliated shop shown on the community map
type PartnerStore struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"not null"`
	Address   string  `json:"address"`
	Website   string  `json:"website"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// CommunityUser is a nearby farmer shown on the community map
type CommunityUser struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"not null"`
	Bio       string  `json:"bio"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// FaqItem is a frequently asked question with its answer
type FaqItem struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Question string `json:"question" gorm:"not null"`
	Answer   string `json:"answer" gorm:"not null"`
}

// Notification is a weather alert delivered to a user
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Kind      string    `json:"kind" gorm:"not null"` // "rain" or "wind"
	Title     string    `json:"title" gorm:"not null"`
	Body      string    `json:"body" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// WeatherDay is one day of forecast after mapping from the raw provider data
type WeatherDay struct {
	Day        string           `json:"day"`
	Temp       int              `json:"temp"`
	TempMin    int              `json:"tempMin"`
	Condition  WeatherCondition `json:"condition"`
	Wind       int              `json:"wind"`
	Humidity   int              `json:"humidity"`
	RainChance int              `json:"rainChance"`
}

// TaskSuggestion is a weather-driven recommendation
type TaskSuggestion struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
	Type   string `json:"type"` // "suggestion" or "warning"
}

// CashFlowSummary aggregates the full transaction list
type CashFlowSummary struct {
	TotalIncome  float64   `json:"totalIncome"`
	TotalExpense float64   `json:"totalExpense"`
	Balance      float64   `json:"balance"`
	Customers    []Contact `json:"customers"`
	Suppliers    []Contact `json:"suppliers"`
}

// AgendaContact is a directory entry with its signed transaction totals
type AgendaContact struct {
	Name             string  `json:"name"`
	Phone            string  `json:"phone,omitempty"`
	Email            string  `json:"email,omitempty"`
	TotalAmount      float64 `json:"totalAmount"`
	TransactionCount int     `json:"transactionCount"`
}

// ProductHistoryItem aggregates transactions of one product
type ProductHistoryItem struct {
	ProductName         string   `json:"productName"`
	TotalQuantity       float64  `json:"totalQuantity"`
	Unit                string   `json:"unit"`
	TotalAmount         float64  `json:"totalAmount"`
	AveragePricePerUnit float64  `json:"averagePricePerUnit"`
	Contacts            []string `json:"contacts"`
	TransactionCount    int      `json:"transactionCount"`
}

// MonthlyPerformance is one bucket of the six-month cash-flow chart
type MonthlyPerformance struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// PerformanceChart is the six-month cash-flow chart with its scale ceiling
type PerformanceChart struct {
	Months    []MonthlyPerformance `json:"months"`
	MaxAmount float64              `json:"maxAmount"`
}

// MonthlyHarvest is one bucket of the twelve-month harvest chart
type MonthlyHarvest struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// HarvestChart is the twelve-month harvest chart for a single unit
type HarvestChart struct {
	Unit     string           `json:"unit"`
	Months   []MonthlyHarvest `json:"months"`
	MaxTotal float64          `json:"maxTotal"`
}

// PlanOffer is an entry of the subscription catalog
type PlanOffer struct {
	Name     plan.Plan `json:"name"`
	Price    float64   `json:"price"` // EUR per month
	Features []string  `json:"features"`
}

// GardenDraft is the state of an in-progress garden design wizard
type GardenDraft struct {
	ID              string   `json:"id"`
	Step            int      `json:"step"`
	FarmingSystem   string   `json:"farmingSystem,omitempty"`
	CultivationType string   `json:"cultivationType,omitempty"`
	SunExposure     string   `json:"sunExposure,omitempty"`
	SelectedPlants  []string `json:"selectedPlants"`
	Width           string   `json:"width,omitempty"`
	Length          string   `json:"length,omitempty"`
	GardenImage     string   `json:"gardenImage,omitempty"` // base64
}

// PlantYield is one row of the designer's estimated production table
type PlantYield struct {
	Plant    string `json:"plant"`
	Quantity int    `json:"quantity"`
	Yield    string `json:"yield"`
}

// GardenPlanResult is the designer's generated layout
type GardenPlanResult struct {
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Yields      []PlantYield `json:"yields"`
}

// RegisterRequest carries the data required to create an account
type RegisterRequest struct {
	Name           string `json:"name" binding:"required"`
	Surname        string `json:"surname" binding:"required"`
	Street         string `json:"street" binding:"required"`
	City           string `json:"city" binding:"required"`
	Province       string `json:"province" binding:"required,len=2"`
	CAP            string `json:"cap" binding:"required,len=5"`
	Email          string `json:"email" binding:"required"`
	Company        string `json:"company"`
	Specialization string `json:"specialization"`
	Website        string `json:"website"`
	Plan           string `json:"plan" binding:"required,oneof=Gratis Pro Business"`
}

// LoginRequest restores a session by email
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TaskRequest creates or updates a checklist entry
type TaskRequest struct {
	Title    string `json:"title" binding:"required"`
	DueDate  string `json:"dueDate" binding:"required,dateformat"` // YYYY-MM-DD
	Category string `json:"category" binding:"omitempty,oneof=Daily Weekly General"`
}

// VegetableRequest adds a crop to the garden
type VegetableRequest struct {
	Name         string `json:"name" binding:"required"`
	PlantingDate string `json:"plantingDate" binding:"required,dateformat"` // YYYY-MM-DD
	Status       string `json:"status" binding:"required,oneof=Seedling Growing Flowering Harvestable"`
}

// NewContactRequest creates or merges an address-book entry
type NewContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// TransactionRequest records a cash-flow movement
type TransactionRequest struct {
	Date        string             `json:"date" binding:"required,dateformat"` // YYYY-MM-DD
	Description string             `json:"description" binding:"required"`
	Amount      float64            `json:"amount" binding:"required"`
	Type        string             `json:"type" binding:"required,oneof=income expense"`
	Category    string             `json:"category" binding:"required"`
	ContactName string             `json:"contactName" binding:"required"`
	Quantity    *float64           `json:"quantity"`
	Unit        string             `json:"unit" binding:"omitempty,oneof=kg l unità"`
	NewContact  *NewContactRequest `json:"newContact"`
}

// HarvestRequest records a harvest
type HarvestRequest struct {
	VegetableID uint    `json:"vegetableId" binding:"required"`
	Date        string  `json:"date" binding:"required,dateformat"` // YYYY-MM-DD
	Quantity    float64 `json:"quantity" binding:"required"`
	Unit        string  `json:"unit" binding:"required,oneof=kg g pezzi"`
	Notes       string  `json:"notes"`
}

// MarketItemRequest publishes a marketplace listing
type MarketItemRequest struct {
	Type          string  `json:"type" binding:"required,oneof=equipment produce"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required"`
	Location      string  `json:"location"`
	Condition     string  `json:"condition" binding:"omitempty,oneof='Come Nuovo' 'Buono Stato' 'Da Revisionare'"`
	GenerateImage bool    `json:"generateImage"`
}

// GardenSelectRequest advances the design wizard by one choice
type GardenSelectRequest struct {
	FarmingSystem   string   `json:"farmingSystem"`
	CultivationType string   `json:"cultivationType"`
	SunExposure     string   `json:"sunExposure"`
	Plants          []string `json:"plants"`
	Width           string   `json:"width"`
	Length          string   `json:"length"`
	GardenImage     string   `json:"gardenImage"`
	SkipPhoto       bool     `json:"skipPhoto"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
