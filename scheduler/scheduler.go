// Package scheduler implements background job scheduling
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"agroio.app/config"
	"agroio.app/models"
	"agroio.app/providers/cache"
	"agroio.app/service"
)

const (
	rainAlertThreshold = 70 // percent
	windAlertThreshold = 35 // km/h

	alertDedupTTL = 24 * time.Hour
	forecastWait  = 15 * time.Second
)

// Scheduler manages periodic tasks for the application
type Scheduler struct {
	config           *config.Config
	userRepo         service.UserRepositoryInterface
	sessionRepo      service.SessionRepositoryInterface
	notificationRepo service.NotificationRepositoryInterface
	weatherService   service.WeatherServiceInterface
	dedupCache       cache.GenericCacheInterface
	stop             chan struct{}
}

// NewScheduler creates and configures a new task scheduler
func NewScheduler(
	config *config.Config,
	userRepo service.UserRepositoryInterface,
	sessionRepo service.SessionRepositoryInterface,
	notificationRepo service.NotificationRepositoryInterface,
	weatherService service.WeatherServiceInterface,
	dedupCache cache.GenericCacheInterface,
) *Scheduler {
	return &Scheduler{
		config:           config,
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		notificationRepo: notificationRepo,
		weatherService:   weatherService,
		dedupCache:       dedupCache,
		stop:             make(chan struct{}),
	}
}

// Start begins the scheduler's operations
func (s *Scheduler) Start() {
	go s.scheduleInterval(time.Duration(s.config.Scheduler.AlertIntervalMinutes)*time.Minute, s.RunWeatherAlerts)
	go s.scheduleInterval(time.Duration(s.config.Scheduler.CleanupIntervalMinutes)*time.Minute, s.cleanupExpiredSessions)
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) scheduleInterval(interval time.Duration, job func()) {
	job()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			job()
		case <-s.stop:
			return
		}
	}
}

// RunWeatherAlerts checks today's forecast for every registered user and
// stores rain/wind notifications, at most one of each kind per day per user.
func (s *Scheduler) RunWeatherAlerts() {
	users, err := s.userRepo.GetAll()
	if err != nil {
		log.Printf("Error loading users for weather alerts: %v\n", err)
		return
	}

	for i := range users {
		if err := s.alertUser(&users[i]); err != nil {
			log.Printf("Error sending weather alerts to user %d: %v\n", users[i].ID, err)
		}
	}
}

func (s *Scheduler) alertUser(user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), forecastWait)
	defer cancel()

	days, err := s.weatherService.GetForecast(ctx, user.Latitude, user.Longitude)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return nil
	}

	today := days[0]
	date := time.Now().Format("2006-01-02")

	if today.RainChance > rainAlertThreshold {
		key := fmt.Sprintf("alert_rain_%d_%s", user.ID, date)
		if s.dedupCache.Add(ctx, key, []byte("sent"), alertDedupTTL) {
			notification := &models.Notification{
				UserID: user.ID,
				Kind:   "rain",
				Title:  "AgroIO - Allerta Pioggia Forte",
				Body: fmt.Sprintf(
					"Attenzione: prevista alta probabilità di pioggia (%d%%) oggi. Considera di proteggere le colture sensibili.",
					today.RainChance),
			}
			if err := s.notificationRepo.Create(notification); err != nil {
				return err
			}
		}
	}

	if today.Wind > windAlertThreshold {
		key := fmt.Sprintf("alert_wind_%d_%s", user.ID, date)
		if s.dedupCache.Add(ctx, key, []byte("sent"), alertDedupTTL) {
			notification := &models.Notification{
				UserID: user.ID,
				Kind:   "wind",
				Title:  "AgroIO - Allerta Vento Forte",
				Body: fmt.Sprintf(
					"Attenzione: previsto vento forte (%d km/h) oggi. Assicura le strutture e le coperture.",
					today.Wind),
			}
			if err := s.notificationRepo.Create(notification); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Scheduler) cleanupExpiredSessions() {
	if err := s.sessionRepo.DeleteExpiredSessions(); err != nil {
		log.Printf("Error cleaning up expired sessions: %v\n", err)
	}
}
