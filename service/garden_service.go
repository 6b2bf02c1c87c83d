package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"agroio.app/errors"
	"agroio.app/metrics"
	"agroio.app/models"
	"agroio.app/providers"
)

const gardenWizardSteps = 7

// GardenDesignService drives the seven step garden design wizard. Drafts
// live in memory only, an abandoned draft costs nothing and a restart gives
// a clean slate.
type GardenDesignService struct {
	catalogRepo CatalogRepositoryInterface
	planner     providers.GardenPlanner
	aiMetrics   *metrics.AIMetrics

	mu     sync.Mutex
	drafts map[string]*models.GardenDraft
}

// NewGardenDesignService creates a new garden design service
func NewGardenDesignService(catalogRepo CatalogRepositoryInterface, planner providers.GardenPlanner, aiMetrics *metrics.AIMetrics) *GardenDesignService {
	return &GardenDesignService{
		catalogRepo: catalogRepo,
		planner:     planner,
		aiMetrics:   aiMetrics,
		drafts:      make(map[string]*models.GardenDraft),
	}
}

// StartDraft opens a new wizard at step one
func (s *GardenDesignService) StartDraft() *models.GardenDraft {
	draft := &models.GardenDraft{
		ID:             uuid.New().String(),
		Step:           1,
		SelectedPlants: []string{},
	}

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()

	log.Printf("[DEBUG] GardenDesignService.StartDraft: id=%s\n", draft.ID)
	return draft
}

// GetDraft returns the current wizard state
func (s *GardenDesignService) GetDraft(id string) (*models.GardenDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return nil, errors.NewNotFoundError("garden draft not found")
	}
	copy := *draft
	return &copy, nil
}

// Select applies the choice for the draft's current step and advances the
// wizard. Steps one to three take a single value, step four needs at least
// one plant, step five needs both dimensions and step six accepts an
// optional photo.
func (s *GardenDesignService) Select(id string, req *models.GardenSelectRequest) (*models.GardenDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return nil, errors.NewNotFoundError("garden draft not found")
	}

	switch draft.Step {
	case 1:
		if err := s.applyFarmingSystem(draft, req.FarmingSystem); err != nil {
			return nil, err
		}
	case 2:
		if req.CultivationType == "" {
			return nil, errors.NewValidationError("cultivationType is required")
		}
		draft.CultivationType = req.CultivationType
	case 3:
		if req.SunExposure == "" {
			return nil, errors.NewValidationError("sunExposure is required")
		}
		draft.SunExposure = req.SunExposure
	case 4:
		if err := s.applyPlants(draft, req.Plants); err != nil {
			return nil, err
		}
	case 5:
		if err := applyDimensions(draft, req.Width, req.Length); err != nil {
			return nil, err
		}
	case 6:
		if !req.SkipPhoto && req.GardenImage != "" {
			draft.GardenImage = req.GardenImage
		}
	default:
		return nil, errors.NewValidationError("the wizard is already on the final step")
	}

	if draft.Step < gardenWizardSteps {
		draft.Step++
	}

	copy := *draft
	return &copy, nil
}

func (s *GardenDesignService) applyFarmingSystem(draft *models.GardenDraft, name string) error {
	if name == "" {
		return errors.NewValidationError("farmingSystem is required")
	}

	systems, err := s.catalogRepo.GetFarmingSystems()
	if err != nil {
		return errors.NewDatabaseError("failed to list farming systems", err)
	}
	for _, system := range systems {
		if system.Name == name {
			draft.FarmingSystem = name
			return nil
		}
	}
	return errors.NewValidationError(fmt.Sprintf("unknown farming system: %s", name))
}

func (s *GardenDesignService) applyPlants(draft *models.GardenDraft, plants []string) error {
	if len(plants) == 0 {
		return errors.NewValidationError("select at least one plant")
	}

	for _, name := range plants {
		info, err := s.catalogRepo.FindVegetableInfo(name)
		if err != nil {
			return errors.NewDatabaseError("failed to look up plant", err)
		}
		if info == nil {
			return errors.NewValidationError(fmt.Sprintf("unknown plant: %s", name))
		}
	}

	draft.SelectedPlants = plants
	return nil
}

func applyDimensions(draft *models.GardenDraft, width, length string) error {
	for _, value := range []string{width, length} {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || parsed <= 0 {
			return errors.NewValidationError("width and length must be positive numbers in meters")
		}
	}
	draft.Width = width
	draft.Length = length
	return nil
}

// Back moves the wizard one step backwards without losing any choice
func (s *GardenDesignService) Back(id string) (*models.GardenDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return nil, errors.NewNotFoundError("garden draft not found")
	}

	if draft.Step > 1 {
		draft.Step--
	}
	copy := *draft
	return &copy, nil
}

// Reset starts the wizard over, clearing every choice
func (s *GardenDesignService) Reset(id string) (*models.GardenDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[id]; !ok {
		return nil, errors.NewNotFoundError("garden draft not found")
	}

	draft := &models.GardenDraft{ID: id, Step: 1, SelectedPlants: []string{}}
	s.drafts[id] = draft

	copy := *draft
	return &copy, nil
}

// Generate produces the layout for a completed wizard. The plan text and
// sketch come from the configured AI planner, the production estimate is
// computed locally from the plant catalog.
func (s *GardenDesignService) Generate(ctx context.Context, id string) (*models.GardenPlanResult, error) {
	s.mu.Lock()
	draft, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return nil, errors.NewNotFoundError("garden draft not found")
	}
	if draft.Step != gardenWizardSteps {
		s.mu.Unlock()
		return nil, errors.NewValidationError("complete every wizard step before generating the layout")
	}
	snapshot := *draft
	s.mu.Unlock()

	prompt := buildGardenPrompt(&snapshot)

	var photo []byte
	if snapshot.GardenImage != "" {
		decoded, err := decodeBase64Image(snapshot.GardenImage)
		if err != nil {
			return nil, errors.NewValidationError("gardenImage is not valid base64 image data")
		}
		photo = decoded
	}

	start := time.Now()
	description, imageURL, err := s.planner.GenerateGardenPlan(ctx, prompt, photo)
	if s.aiMetrics != nil {
		s.aiMetrics.RecordRequest("garden_plan", time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	yields, err := s.estimateYields(&snapshot)
	if err != nil {
		return nil, err
	}

	return &models.GardenPlanResult{
		Description: description,
		ImageURL:    imageURL,
		Yields:      yields,
	}, nil
}

// estimateYields splits the plot area evenly across the selected plants and
// derives how many of each fit from the catalog spacing.
func (s *GardenDesignService) estimateYields(draft *models.GardenDraft) ([]models.PlantYield, error) {
	width, _ := strconv.ParseFloat(draft.Width, 64)
	length, _ := strconv.ParseFloat(draft.Length, 64)
	area := width * length
	if area == 0 || len(draft.SelectedPlants) == 0 {
		return []models.PlantYield{}, nil
	}

	yields := make([]models.PlantYield, 0, len(draft.SelectedPlants))
	for _, name := range draft.SelectedPlants {
		info, err := s.catalogRepo.FindVegetableInfo(name)
		if err != nil {
			return nil, errors.NewDatabaseError("failed to look up plant", err)
		}
		if info == nil {
			continue
		}

		plantArea := (float64(info.SpacingPlants) / 100) * (float64(info.SpacingRows) / 100)
		quantity := 0
		if plantArea > 0 {
			quantity = int(math.Floor(area / plantArea / float64(len(draft.SelectedPlants))))
		}

		yields = append(yields, models.PlantYield{
			Plant:    info.Name,
			Quantity: quantity,
			Yield:    info.Yield,
		})
	}

	return yields, nil
}

func buildGardenPrompt(draft *models.GardenDraft) string {
	photoContext := "Nessuna foto fornita."
	if draft.GardenImage != "" {
		photoContext = "Una foto dell'area è stata fornita."
	}

	return fmt.Sprintf(`Agisci come un esperto di permacultura e progettazione di orti.
La tua risposta DEVE contenere due parti distinte: una descrizione testuale e un rendering grafico.

**1. Descrizione Testuale Dettagliata:**
Basandoti sulle seguenti informazioni, fornisci una semplice ma efficace descrizione testuale per un layout di un orto. Descrivi dove posizionare ogni pianta per una crescita ottimale, considerando le consociazioni benefiche (piante amiche) e quelle da evitare. Struttura la risposta in sezioni chiare e usa elenchi puntati. Tieni conto della filosofia del sistema agricolo scelto.

**2. Rendering Grafico Semplice:**
Crea uno schizzo del layout. Se è stata fornita una foto, sovrapponi il layout a quella foto in modo schematico. Se non c'è una foto, crea un disegno da zero. Il rendering deve essere chiaro e indicare le aree per le diverse piante.

**Dettagli dell'Orto:**
- **Sistema Agricolo:** %s
- **Tipo di Coltivazione:** %s
- **Dimensioni:** %s metri (larghezza) x %s metri (lunghezza)
- **Esposizione Solare:** %s
- **Piante Selezionate:** %s
- **Contesto:** %s

Fornisci consigli pratici e concisi in entrambi gli output. Assicurati che l'output contenga sia la parte testuale che quella grafica.`,
		draft.FarmingSystem,
		draft.CultivationType,
		draft.Width,
		draft.Length,
		draft.SunExposure,
		strings.Join(draft.SelectedPlants, ", "),
		photoContext,
	)
}

// decodeBase64Image accepts both a raw base64 payload and a full data URL
func decodeBase64Image(data string) ([]byte, error) {
	if idx := strings.Index(data, ","); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}
	return base64.StdEncoding.DecodeString(data)
}
