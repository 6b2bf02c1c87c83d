package service

import (
	"log"
	"time"

	"agroio.app/errors"
	"agroio.app/models"
	"agroio.app/pkg/validation"
)

// HarvestService handles harvest recording and the yearly chart
type HarvestService struct {
	harvestRepo   HarvestRepositoryInterface
	vegetableRepo VegetableRepositoryInterface
}

// NewHarvestService creates a new harvest service
func NewHarvestService(harvestRepo HarvestRepositoryInterface, vegetableRepo VegetableRepositoryInterface) *HarvestService {
	return &HarvestService{
		harvestRepo:   harvestRepo,
		vegetableRepo: vegetableRepo,
	}
}

// ListHarvests returns all harvests, most recent first
func (s *HarvestService) ListHarvests() ([]models.Harvest, error) {
	harvests, err := s.harvestRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list harvests", err)
	}
	return harvests, nil
}

// AddHarvest records a harvest for an existing vegetable. The vegetable name
// is denormalized onto the record so the history survives later deletions.
func (s *HarvestService) AddHarvest(req *models.HarvestRequest) (*models.Harvest, error) {
	log.Printf("[DEBUG] HarvestService.AddHarvest: vegetableID=%d, quantity=%.2f %s\n",
		req.VegetableID, req.Quantity, req.Unit)

	if !validation.IsPositiveAmount(req.Quantity) {
		return nil, errors.NewValidationError("quantity must be a positive number")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.NewValidationError("date must be in YYYY-MM-DD format")
	}

	vegetable, err := s.vegetableRepo.FindByID(req.VegetableID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to find vegetable", err)
	}
	if vegetable == nil {
		return nil, errors.NewValidationError("Ortaggio non valido selezionato.")
	}

	harvest := &models.Harvest{
		VegetableID:   vegetable.ID,
		VegetableName: vegetable.Name,
		Date:          date,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		Notes:         req.Notes,
	}
	if err := s.harvestRepo.Create(harvest); err != nil {
		return nil, errors.NewDatabaseError("failed to create harvest", err)
	}

	return harvest, nil
}

// GetChart builds the twelve month harvest chart for one unit. Quantities in
// other units are excluded rather than converted.
func (s *HarvestService) GetChart(unit string) (*models.HarvestChart, error) {
	if unit != "kg" && unit != "g" && unit != "pezzi" {
		return nil, errors.NewValidationError("unit must be one of 'kg', 'g' or 'pezzi'")
	}

	harvests, err := s.harvestRepo.ListByUnit(unit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list harvests", err)
	}

	chart := BuildHarvestChart(harvests, unit, time.Now())
	return &chart, nil
}

// BuildHarvestChart buckets harvests of a single unit into the last twelve
// calendar months. The reference day is normalized to the first of the month
// and the scale ceiling is floored at 1.
func BuildHarvestChart(harvests []models.Harvest, unit string, now time.Time) models.HarvestChart {
	type bucket struct {
		year  int
		month time.Month
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := make([]models.MonthlyHarvest, 12)
	index := make(map[bucket]int, 12)
	for i := 0; i < 12; i++ {
		m := first.AddDate(0, i-11, 0)
		months[i] = models.MonthlyHarvest{Month: italianShortMonths[m.Month()-1]}
		index[bucket{m.Year(), m.Month()}] = i
	}

	for _, h := range harvests {
		if h.Unit != unit {
			continue
		}
		if i, ok := index[bucket{h.Date.Year(), h.Date.Month()}]; ok {
			months[i].Total += h.Quantity
		}
	}

	maxTotal := 0.0
	for _, m := range months {
		if m.Total > maxTotal {
			maxTotal = m.Total
		}
	}
	if maxTotal <= 0 {
		maxTotal = 1
	}

	return models.HarvestChart{Unit: unit, Months: months, MaxTotal: maxTotal}
}
