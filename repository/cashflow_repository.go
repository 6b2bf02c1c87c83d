package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"agroio.app/models"
)

// TransactionRepository handles data access operations for cash flow movements
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new repository for transaction data
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetAll retrieves all transactions ordered by date, most recent first.
// Ties on the same date are broken by ID so newly inserted movements stay
// ahead of older ones.
func (r *TransactionRepository) GetAll() ([]models.Transaction, error) {
	var transactions []models.Transaction
	result := r.db.Order("date DESC, id DESC").Find(&transactions)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing transactions: %v\n", result.Error)
		return nil, result.Error
	}

	return transactions, nil
}

// Create persists a new transaction
func (r *TransactionRepository) Create(transaction *models.Transaction) error {
	log.Printf("[DEBUG] TransactionRepository.Create: type=%s, amount=%.2f\n", transaction.Type, transaction.Amount)

	result := r.db.Create(transaction)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating transaction: %v\n", result.Error)
		return result.Error
	}

	log.Printf("[DEBUG] Created transaction with ID: %d\n", transaction.ID)
	return nil
}

// ContactRepository handles data access operations for the contact directory
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new repository for contact data
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// GetAll retrieves the full contact directory
func (r *ContactRepository) GetAll() ([]models.Contact, error) {
	var contacts []models.Contact
	result := r.db.Order("id ASC").Find(&contacts)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing contacts: %v\n", result.Error)
		return nil, result.Error
	}

	return contacts, nil
}

// FindByNameInsensitive retrieves a contact matching the name regardless of case
func (r *ContactRepository) FindByNameInsensitive(name string) (*models.Contact, error) {
	log.Printf("[DEBUG] ContactRepository.FindByNameInsensitive: name=%s\n", name)

	var contact models.Contact
	result := r.db.Where("LOWER(name) = LOWER(?)", name).First(&contact)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding contact: %v\n", result.Error)
		return nil, result.Error
	}

	return &contact, nil
}

// Create persists a new contact
func (r *ContactRepository) Create(contact *models.Contact) error {
	log.Printf("[DEBUG] ContactRepository.Create: name=%s\n", contact.Name)

	result := r.db.Create(contact)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating contact: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// Update modifies an existing contact
func (r *ContactRepository) Update(contact *models.Contact) error {
	log.Printf("[DEBUG] ContactRepository.Update: id=%d\n", contact.ID)

	result := r.db.Save(contact)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when updating contact: %v\n", result.Error)
		return result.Error
	}

	return nil
}
