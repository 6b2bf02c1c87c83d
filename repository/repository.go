// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agroio.app/models"
)

// UserRepository handles data access operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository for user data
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	log.Printf("[DEBUG] UserRepository.FindByEmail: email=%s\n", email)

	var user models.User
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Println("[DEBUG] No user found")
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding user: %v\n", result.Error)
		return nil, result.Error
	}

	return &user, nil
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	log.Printf("[DEBUG] UserRepository.FindByID: id=%d\n", id)

	var user models.User
	result := r.db.First(&user, id)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when finding user by ID: %v\n", result.Error)
		return nil, result.Error
	}

	return &user, nil
}

// Create persists a new user to the database
func (r *UserRepository) Create(user *models.User) error {
	log.Printf("[DEBUG] UserRepository.Create: email=%s\n", user.Email)

	result := r.db.Create(user)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating user: %v\n", result.Error)
		return result.Error
	}

	log.Printf("[DEBUG] Created user with ID: %d\n", user.ID)
	return nil
}

// Update modifies an existing user
func (r *UserRepository) Update(user *models.User) error {
	log.Printf("[DEBUG] UserRepository.Update: id=%d\n", user.ID)

	result := r.db.Save(user)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when updating user: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// GetAll retrieves every registered user
func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	result := r.db.Find(&users)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing users: %v\n", result.Error)
		return nil, result.Error
	}

	return users, nil
}

// SessionRepository handles data access operations for session tokens
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new repository for session operations
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession generates and stores a new session for a user
func (r *SessionRepository) CreateSession(userID uint, ttl time.Duration) (*models.Session, error) {
	log.Printf("[DEBUG] SessionRepository.CreateSession: userID=%d, ttl=%v\n", userID, ttl)

	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	result := r.db.Create(session)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating session: %v\n", result.Error)
		return nil, result.Error
	}

	log.Printf("[DEBUG] Created session with ID: %d\n", session.ID)
	return session, nil
}

// FindByToken retrieves a non-expired session by its token value
func (r *SessionRepository) FindByToken(token string) (*models.Session, error) {
	var session models.Session
	result := r.db.Preload("User").
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when finding session: %v\n", result.Error)
		return nil, result.Error
	}

	return &session, nil
}

// DeleteSession removes a session from the database
func (r *SessionRepository) DeleteSession(session *models.Session) error {
	result := r.db.Delete(session)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting session: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// DeleteExpiredSessions removes all expired sessions from the database
func (r *SessionRepository) DeleteExpiredSessions() error {
	log.Println("[DEBUG] SessionRepository.DeleteExpiredSessions called")

	result := r.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting expired sessions: %v\n", result.Error)
		return result.Error
	}

	log.Printf("[DEBUG] Deleted %d expired sessions\n", result.RowsAffected)
	return nil
}
