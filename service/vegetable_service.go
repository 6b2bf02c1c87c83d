package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"agroio.app/errors"
	"agroio.app/metrics"
	"agroio.app/models"
	"agroio.app/providers"
)

const imageGenerationTimeout = 2 * time.Minute

// VegetableService handles crop tracking with asynchronous image generation
type VegetableService struct {
	vegetableRepo VegetableRepositoryInterface
	imageGen      providers.ImageGenerator
	aiMetrics     *metrics.AIMetrics
}

// NewVegetableService creates a new vegetable service
func NewVegetableService(vegetableRepo VegetableRepositoryInterface, imageGen providers.ImageGenerator, aiMetrics *metrics.AIMetrics) *VegetableService {
	return &VegetableService{
		vegetableRepo: vegetableRepo,
		imageGen:      imageGen,
		aiMetrics:     aiMetrics,
	}
}

// ListVegetables returns all tracked crops
func (s *VegetableService) ListVegetables() ([]models.Vegetable, error) {
	vegetables, err := s.vegetableRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list vegetables", err)
	}
	return vegetables, nil
}

// AddVegetable stores the crop immediately with a pending image and starts
// generation in the background. The caller gets the placeholder back without
// waiting, the image is patched in once generation settles.
func (s *VegetableService) AddVegetable(req *models.VegetableRequest) (*models.Vegetable, error) {
	log.Printf("[DEBUG] VegetableService.AddVegetable: name=%s\n", req.Name)

	plantingDate, err := time.Parse("2006-01-02", req.PlantingDate)
	if err != nil {
		return nil, errors.NewValidationError("plantingDate must be in YYYY-MM-DD format")
	}

	vegetable := &models.Vegetable{
		Name:          req.Name,
		PlantingDate:  plantingDate,
		Status:        models.VegetableStatus(req.Status),
		ImageState:    models.ImagePending,
		GenerationKey: uuid.New().String(),
	}
	if err := s.vegetableRepo.Create(vegetable); err != nil {
		return nil, errors.NewDatabaseError("failed to create vegetable", err)
	}

	go s.generateImage(vegetable.GenerationKey, vegetable.Name)

	return vegetable, nil
}

// FindByID returns one crop
func (s *VegetableService) FindByID(id uint) (*models.Vegetable, error) {
	vegetable, err := s.vegetableRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to find vegetable", err)
	}
	if vegetable == nil {
		return nil, errors.NewNotFoundError("vegetable not found")
	}
	return vegetable, nil
}

// generateImage runs in its own goroutine. Results are written back by
// generation key, so two concurrent generations can never patch each other's
// rows even when one of them fails.
func (s *VegetableService) generateImage(generationKey, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), imageGenerationTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Una foto vibrante e di alta qualità di un/una %s maturo/a su uno sfondo pulito e neutro, con un'atmosfera rustica e luminosa. Stile fotografico naturale, adatto per una moderna applicazione agricola. Nessun testo o filigrana.", name)

	start := time.Now()
	imageURL, err := s.imageGen.GenerateImage(ctx, prompt)
	if s.aiMetrics != nil {
		s.aiMetrics.RecordRequest("vegetable_image", time.Since(start), err)
	}

	if err != nil {
		log.Printf("[ERROR] Image generation failed for %s: %v\n", name, err)
		fallback := fmt.Sprintf("https://loremflickr.com/400/300/vegetable/error?lock=%d", time.Now().UnixMilli())
		if updateErr := s.vegetableRepo.UpdateImageByKey(generationKey, fallback, models.ImageFailed); updateErr != nil {
			log.Printf("[ERROR] Failed to store fallback image: %v\n", updateErr)
		}
		return
	}

	if imageURL == "" {
		imageURL = fmt.Sprintf("https://loremflickr.com/400/300/vegetable,plant?lock=%d", time.Now().UnixMilli())
	}
	if err := s.vegetableRepo.UpdateImageByKey(generationKey, imageURL, models.ImageReady); err != nil {
		log.Printf("[ERROR] Failed to store generated image: %v\n", err)
	}
}
