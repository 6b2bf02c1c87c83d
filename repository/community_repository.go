package repository

import (
	"log"

	"gorm.io/gorm"

	"agroio.app/models"
)

// MarketRepository handles data access operations for marketplace listings
type MarketRepository struct {
	db *gorm.DB
}

// NewMarketRepository creates a new repository for marketplace data
func NewMarketRepository(db *gorm.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

// GetByType retrieves all marketplace items of the given type
func (r *MarketRepository) GetByType(itemType string) ([]models.MarketItem, error) {
	var items []models.MarketItem
	result := r.db.Where("type = ?", itemType).Order("id ASC").Find(&items)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing market items: %v\n", result.Error)
		return nil, result.Error
	}

	return items, nil
}

// Create persists a new marketplace listing
func (r *MarketRepository) Create(item *models.MarketItem) error {
	log.Printf("[DEBUG] MarketRepository.Create: type=%s, name=%s\n", item.Type, item.Name)

	result := r.db.Create(item)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating market item: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// CommunityRepository handles data access operations for community content
type CommunityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new repository for community data
func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// GetPosts retrieves community posts, newest first
func (r *CommunityRepository) GetPosts() ([]models.CommunityPost, error) {
	var posts []models.CommunityPost
	result := r.db.Order("id DESC").Find(&posts)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing posts: %v\n", result.Error)
		return nil, result.Error
	}

	return posts, nil
}

// CreatePost persists a new community post
func (r *CommunityRepository) CreatePost(post *models.CommunityPost) error {
	log.Printf("[DEBUG] CommunityRepository.CreatePost: author=%s\n", post.Author)

	result := r.db.Create(post)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating post: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// GetPartnerStores retrieves the partner stores shown on the community map
func (r *CommunityRepository) GetPartnerStores() ([]models.PartnerStore, error) {
	var stores []models.PartnerStore
	result := r.db.Order("id ASC").Find(&stores)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing partner stores: %v\n", result.Error)
		return nil, result.Error
	}

	return stores, nil
}

// GetCommunityUsers retrieves other farmers shown on the community map
func (r *CommunityRepository) GetCommunityUsers() ([]models.CommunityUser, error) {
	var users []models.CommunityUser
	result := r.db.Order("id ASC").Find(&users)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing community users: %v\n", result.Error)
		return nil, result.Error
	}

	return users, nil
}

// FaqRepository handles data access operations for FAQ entries
type FaqRepository struct {
	db *gorm.DB
}

// NewFaqRepository creates a new repository for FAQ data
func NewFaqRepository(db *gorm.DB) *FaqRepository {
	return &FaqRepository{db: db}
}

// GetAll retrieves every FAQ entry
func (r *FaqRepository) GetAll() ([]models.FaqItem, error) {
	var faqs []models.FaqItem
	result := r.db.Order("id ASC").Find(&faqs)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing FAQ entries: %v\n", result.Error)
		return nil, result.Error
	}

	return faqs, nil
}

// NotificationRepository handles data access operations for weather alerts
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new repository for notification data
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// GetByUser retrieves notifications for a user, newest first
func (r *NotificationRepository) GetByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	result := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&notifications)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing notifications: %v\n", result.Error)
		return nil, result.Error
	}

	return notifications, nil
}

// Create persists a new notification
func (r *NotificationRepository) Create(notification *models.Notification) error {
	log.Printf("[DEBUG] NotificationRepository.Create: userID=%d, kind=%s\n", notification.UserID, notification.Kind)

	result := r.db.Create(notification)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating notification: %v\n", result.Error)
		return result.Error
	}

	return nil
}
