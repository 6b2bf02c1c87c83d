package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"agroio.app/errors"
	"agroio.app/metrics"
	"agroio.app/models"
	"agroio.app/pkg/validation"
	"agroio.app/providers"
)

// MarketService handles the equipment and produce marketplace
type MarketService struct {
	marketRepo MarketRepositoryInterface
	imageGen   providers.ImageGenerator
	aiMetrics  *metrics.AIMetrics
}

// NewMarketService creates a new marketplace service
func NewMarketService(marketRepo MarketRepositoryInterface, imageGen providers.ImageGenerator, aiMetrics *metrics.AIMetrics) *MarketService {
	return &MarketService{
		marketRepo: marketRepo,
		imageGen:   imageGen,
		aiMetrics:  aiMetrics,
	}
}

// ListItems returns listings of one marketplace section
func (s *MarketService) ListItems(itemType string) ([]models.MarketItem, error) {
	if itemType != "equipment" && itemType != "produce" {
		return nil, errors.NewValidationError("type must be either 'equipment' or 'produce'")
	}

	items, err := s.marketRepo.GetByType(itemType)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list market items", err)
	}
	return items, nil
}

// PublishItem creates a listing attributed to the seller. When requested, a
// product photo is generated synchronously so the listing goes live complete.
func (s *MarketService) PublishItem(ctx context.Context, req *models.MarketItemRequest, seller *models.User) (*models.MarketItem, error) {
	log.Printf("[DEBUG] MarketService.PublishItem: type=%s, name=%s\n", req.Type, req.Name)

	if !validation.IsPositiveAmount(req.Price) {
		return nil, errors.NewValidationError("price must be a positive number")
	}
	if req.Type == "equipment" && req.Condition == "" {
		return nil, errors.NewValidationError("condition is required for equipment listings")
	}

	item := &models.MarketItem{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Condition:   req.Condition,
		Seller:      fmt.Sprintf("%s %s", seller.Name, seller.Surname),
	}

	if req.GenerateImage {
		item.ImageURL = s.generateListingImage(ctx, req.Name)
	}

	if err := s.marketRepo.Create(item); err != nil {
		return nil, errors.NewDatabaseError("failed to create market item", err)
	}

	return item, nil
}

func (s *MarketService) generateListingImage(ctx context.Context, name string) string {
	prompt := fmt.Sprintf("Una foto realistica e ben illuminata di %s per un annuncio di un mercatino agricolo online. Sfondo neutro, nessun testo o filigrana.", name)

	start := time.Now()
	imageURL, err := s.imageGen.GenerateImage(ctx, prompt)
	if s.aiMetrics != nil {
		s.aiMetrics.RecordRequest("market_image", time.Since(start), err)
	}
	if err != nil || imageURL == "" {
		log.Printf("[ERROR] Listing image generation failed for %s: %v\n", name, err)
		return fmt.Sprintf("https://loremflickr.com/400/300/farm,product?lock=%d", time.Now().UnixMilli())
	}
	return imageURL
}
