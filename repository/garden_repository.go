package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"agroio.app/models"
)

// TaskRepository handles data access operations for checklist tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new repository for task data
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// GetAll retrieves every checklist task
func (r *TaskRepository) GetAll() ([]models.Task, error) {
	var tasks []models.Task
	result := r.db.Order("id ASC").Find(&tasks)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing tasks: %v\n", result.Error)
		return nil, result.Error
	}

	return tasks, nil
}

// FindByID retrieves a task by its ID
func (r *TaskRepository) FindByID(id uint) (*models.Task, error) {
	var task models.Task
	result := r.db.First(&task, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding task: %v\n", result.Error)
		return nil, result.Error
	}

	return &task, nil
}

// Create persists a new task
func (r *TaskRepository) Create(task *models.Task) error {
	log.Printf("[DEBUG] TaskRepository.Create: title=%s\n", task.Title)

	result := r.db.Create(task)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating task: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// Update modifies an existing task
func (r *TaskRepository) Update(task *models.Task) error {
	result := r.db.Save(task)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when updating task: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(id uint) error {
	log.Printf("[DEBUG] TaskRepository.Delete: id=%d\n", id)

	result := r.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting task: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// VegetableRepository handles data access operations for grown vegetables
type VegetableRepository struct {
	db *gorm.DB
}

// NewVegetableRepository creates a new repository for vegetable data
func NewVegetableRepository(db *gorm.DB) *VegetableRepository {
	return &VegetableRepository{db: db}
}

// GetAll retrieves every tracked vegetable
func (r *VegetableRepository) GetAll() ([]models.Vegetable, error) {
	var vegetables []models.Vegetable
	result := r.db.Order("id ASC").Find(&vegetables)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing vegetables: %v\n", result.Error)
		return nil, result.Error
	}

	return vegetables, nil
}

// FindByID retrieves a vegetable by its ID
func (r *VegetableRepository) FindByID(id uint) (*models.Vegetable, error) {
	var vegetable models.Vegetable
	result := r.db.First(&vegetable, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding vegetable: %v\n", result.Error)
		return nil, result.Error
	}

	return &vegetable, nil
}

// FindByName retrieves a vegetable by its exact name
func (r *VegetableRepository) FindByName(name string) (*models.Vegetable, error) {
	var vegetable models.Vegetable
	result := r.db.Where("name = ?", name).First(&vegetable)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding vegetable by name: %v\n", result.Error)
		return nil, result.Error
	}

	return &vegetable, nil
}

// Create persists a new vegetable
func (r *VegetableRepository) Create(vegetable *models.Vegetable) error {
	log.Printf("[DEBUG] VegetableRepository.Create: name=%s, imageState=%s\n", vegetable.Name, vegetable.ImageState)

	result := r.db.Create(vegetable)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating vegetable: %v\n", result.Error)
		return result.Error
	}

	log.Printf("[DEBUG] Created vegetable with ID: %d\n", vegetable.ID)
	return nil
}

// UpdateImageByKey patches the image of the vegetable identified by its
// generation key. Lookup by key rather than position keeps concurrent
// generations from patching each other's rows.
func (r *VegetableRepository) UpdateImageByKey(generationKey, imageURL string, state models.ImageState) error {
	log.Printf("[DEBUG] VegetableRepository.UpdateImageByKey: key=%s, state=%s\n", generationKey, state)

	result := r.db.Model(&models.Vegetable{}).
		Where("generation_key = ?", generationKey).
		Updates(map[string]interface{}{"image_url": imageURL, "image_state": state})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when updating vegetable image: %v\n", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		log.Printf("[DEBUG] No vegetable found for generation key %s\n", generationKey)
	}
	return nil
}

// FindByGenerationKey retrieves a vegetable by its image generation key
func (r *VegetableRepository) FindByGenerationKey(generationKey string) (*models.Vegetable, error) {
	var vegetable models.Vegetable
	result := r.db.Where("generation_key = ?", generationKey).First(&vegetable)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding vegetable by key: %v\n", result.Error)
		return nil, result.Error
	}

	return &vegetable, nil
}

// HarvestRepository handles data access operations for harvest records
type HarvestRepository struct {
	db *gorm.DB
}

// NewHarvestRepository creates a new repository for harvest data
func NewHarvestRepository(db *gorm.DB) *HarvestRepository {
	return &HarvestRepository{db: db}
}

// GetAll retrieves all harvests ordered by date, most recent first
func (r *HarvestRepository) GetAll() ([]models.Harvest, error) {
	var harvests []models.Harvest
	result := r.db.Order("date DESC, id DESC").Find(&harvests)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing harvests: %v\n", result.Error)
		return nil, result.Error
	}

	return harvests, nil
}

// ListByUnit retrieves all harvests recorded in the given unit
func (r *HarvestRepository) ListByUnit(unit string) ([]models.Harvest, error) {
	var harvests []models.Harvest
	result := r.db.Where("unit = ?", unit).Order("date ASC").Find(&harvests)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing harvests by unit: %v\n", result.Error)
		return nil, result.Error
	}

	return harvests, nil
}

// Create persists a new harvest record
func (r *HarvestRepository) Create(harvest *models.Harvest) error {
	log.Printf("[DEBUG] HarvestRepository.Create: vegetable=%s, quantity=%.2f %s\n",
		harvest.VegetableName, harvest.Quantity, harvest.Unit)

	result := r.db.Create(harvest)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating harvest: %v\n", result.Error)
		return result.Error
	}

	return nil
}

// CatalogRepository handles read access to the reference catalogs used by the
// garden design wizard
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new repository for catalog data
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetVegetableInfos retrieves the vegetable reference database
func (r *CatalogRepository) GetVegetableInfos() ([]models.VegetableInfo, error) {
	var infos []models.VegetableInfo
	result := r.db.Order("id ASC").Find(&infos)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing vegetable infos: %v\n", result.Error)
		return nil, result.Error
	}

	return infos, nil
}

// FindVegetableInfo retrieves reference data for a single plant by name
func (r *CatalogRepository) FindVegetableInfo(name string) (*models.VegetableInfo, error) {
	var info models.VegetableInfo
	result := r.db.Where("name = ?", name).First(&info)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding vegetable info: %v\n", result.Error)
		return nil, result.Error
	}

	return &info, nil
}

// GetFarmingSystems retrieves the available farming systems
func (r *CatalogRepository) GetFarmingSystems() ([]models.FarmingSystem, error) {
	var systems []models.FarmingSystem
	result := r.db.Order("id ASC").Find(&systems)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing farming systems: %v\n", result.Error)
		return nil, result.Error
	}

	return systems, nil
}
