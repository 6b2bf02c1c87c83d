package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"agroio.app/config"
	"agroio.app/errors"
	"agroio.app/models"
	"agroio.app/pkg/validation"
	"agroio.app/plan"
)

// UserService handles registration, sessions and subscription plans
type UserService struct {
	userRepo    UserRepositoryInterface
	sessionRepo SessionRepositoryInterface
	config      *config.Config
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepositoryInterface, sessionRepo SessionRepositoryInterface, config *config.Config) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// Register creates an account and opens its first session. The postal
// address is composed from its parts, with the province always uppercased.
func (s *UserService) Register(req *models.RegisterRequest) (*models.User, *models.Session, error) {
	log.Printf("[DEBUG] UserService.Register called for email: %s\n", req.Email)

	if err := s.validateRegisterRequest(req); err != nil {
		return nil, nil, err
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, nil, errors.NewDatabaseError("failed to check existing user", err)
	}
	if existing != nil {
		return nil, nil, errors.NewAlreadyExistsError("email already registered")
	}

	selectedPlan := plan.Plan(req.Plan)
	address := fmt.Sprintf("%s, %s %s (%s)", req.Street, req.CAP, req.City, strings.ToUpper(req.Province))

	user := &models.User{
		Name:           req.Name,
		Surname:        req.Surname,
		Email:          req.Email,
		Address:        address,
		Company:        req.Company,
		Specialization: req.Specialization,
		Website:        req.Website,
		Plan:           &selectedPlan,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, errors.NewDatabaseError("failed to create user", err)
	}

	session, err := s.sessionRepo.CreateSession(user.ID, s.sessionTTL())
	if err != nil {
		return nil, nil, errors.NewDatabaseError("failed to create session", err)
	}

	return user, session, nil
}

func (s *UserService) validateRegisterRequest(req *models.RegisterRequest) error {
	if !validation.IsNotEmpty(req.Name) || !validation.IsNotEmpty(req.Surname) {
		return errors.NewValidationError("name and surname are required")
	}
	if !validation.IsNotEmpty(req.Street) || !validation.IsNotEmpty(req.City) {
		return errors.NewValidationError("street and city are required")
	}
	if !validation.IsValidProvince(req.Province) {
		return errors.NewValidationError("province must be a two letter code")
	}
	if !validation.IsValidCAP(req.CAP) {
		return errors.NewValidationError("cap must be five digits")
	}
	if !validation.IsValidEmail(req.Email) {
		return errors.NewValidationError("invalid email format")
	}
	if !plan.Plan(req.Plan).IsValid() {
		return errors.NewValidationError("plan must be one of 'Gratis', 'Pro' or 'Business'")
	}
	return nil
}

// Login opens a session for an existing account
func (s *UserService) Login(email string) (*models.User, *models.Session, error) {
	log.Printf("[DEBUG] UserService.Login called for email: %s\n", email)

	if !validation.IsValidEmail(email) {
		return nil, nil, errors.NewValidationError("invalid email format")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, nil, errors.NewDatabaseError("failed to find user", err)
	}
	if user == nil {
		return nil, nil, errors.NewNotFoundError("no account registered for this email")
	}

	session, err := s.sessionRepo.CreateSession(user.ID, s.sessionTTL())
	if err != nil {
		return nil, nil, errors.NewDatabaseError("failed to create session", err)
	}

	return user, session, nil
}

// Logout invalidates the session behind the token
func (s *UserService) Logout(token string) error {
	if token == "" {
		return errors.NewValidationError("token cannot be empty")
	}

	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		return errors.NewTokenError("session not found or expired")
	}

	return s.sessionRepo.DeleteSession(session)
}

// Authenticate resolves a session token to its user
func (s *UserService) Authenticate(token string) (*models.User, error) {
	if token == "" {
		return nil, errors.NewTokenError("missing session token")
	}

	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		return nil, errors.NewTokenError("session not found or expired")
	}

	return &session.User, nil
}

// ChangePlan switches the user's subscription. Downgrades take effect
// immediately, views above the new plan simply lock again.
func (s *UserService) ChangePlan(user *models.User, planName string) (*models.User, error) {
	newPlan := plan.Plan(planName)
	if !newPlan.IsValid() {
		return nil, errors.NewValidationError("plan must be one of 'Gratis', 'Pro' or 'Business'")
	}

	user.Plan = &newPlan
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.NewDatabaseError("failed to update user", err)
	}

	log.Printf("[DEBUG] User %d switched to plan %s\n", user.ID, newPlan)
	return user, nil
}

// UpdateLocation stores the coordinates used for forecasts and alerts
func (s *UserService) UpdateLocation(user *models.User, latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return errors.NewValidationError("coordinates out of range")
	}

	user.Latitude = latitude
	user.Longitude = longitude
	if err := s.userRepo.Update(user); err != nil {
		return errors.NewDatabaseError("failed to update user", err)
	}
	return nil
}

// GetPlanOffers returns the subscription catalog
func (s *UserService) GetPlanOffers() []models.PlanOffer {
	return []models.PlanOffer{
		{
			Name:  plan.Gratis,
			Price: 0,
			Features: []string{
				"Gestione Ortaggi",
				"Check List attività",
				"Previsioni Meteo",
				"Accesso alle FAQ",
			},
		},
		{
			Name:  plan.Pro,
			Price: 15,
			Features: []string{
				"Tutte le funzionalità Gratis",
				"Gestione Raccolti",
				"AgroGiardiniere (Diagnosi AI)",
				"Accesso alla Community",
				"Marketplace E-Commerce",
			},
		},
		{
			Name:  plan.Business,
			Price: 40,
			Features: []string{
				"Tutte le funzionalità Pro",
				"Progettazione Orto con AI",
				"Gestione Cash Flow (Entrate/Uscite)",
				"Supporto prioritario",
			},
		},
	}
}

func (s *UserService) sessionTTL() time.Duration {
	return time.Duration(s.config.Session.TTLHours) * time.Hour
}
