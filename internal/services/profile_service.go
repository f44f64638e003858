package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// ProfileServiceImpl implements domain.ProfileService. It never gets called
// into by the session manager; instead it subscribes to session events, so
// the sign-in fetch and sign-out clear cascade is wired at construction
// time.
type ProfileServiceImpl struct {
	mu      sync.Mutex
	profile *domain.UserProfile
	lastErr error

	api domain.APIGateway
	log *logrus.Logger

	// fetchDone is signalled after each fetch attempt; tests synchronize on
	// it instead of sleeping.
	fetchDone chan struct{}
}

// NewProfileService creates the profile store and subscribes it to the bus.
func NewProfileService(api domain.APIGateway, bus domain.EventBus, log *logrus.Logger) *ProfileServiceImpl {
	s := &ProfileServiceImpl{
		api:       api,
		log:       log,
		fetchDone: make(chan struct{}, 1),
	}
	bus.Subscribe(domain.SessionEstablishedEvent, func(e domain.Event) {
		go s.fetch(e.UserID)
	})
	bus.Subscribe(domain.SessionClearedEvent, func(domain.Event) {
		s.clear()
	})
	return s
}

// Profile implements domain.ProfileService.
func (s *ProfileServiceImpl) Profile() *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	profile := *s.profile
	return &profile
}

// LastError implements domain.ProfileService.
func (s *ProfileServiceImpl) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// fetch loads the profile for the signed-in user. A fetch failure records
// the error but keeps any previously cached profile.
func (s *ProfileServiceImpl) fetch(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := s.api.FetchProfile(ctx, userID)

	s.mu.Lock()
	if err != nil {
		s.lastErr = err
		s.log.WithError(err).WithField("user_id", userID).Warn("profile fetch failed")
	} else {
		s.profile = profile
		s.lastErr = nil
	}
	s.mu.Unlock()

	select {
	case s.fetchDone <- struct{}{}:
	default:
	}
}

func (s *ProfileServiceImpl) clear() {
	s.mu.Lock()
	s.profile = nil
	s.lastErr = nil
	s.mu.Unlock()
}

var _ domain.ProfileService = (*ProfileServiceImpl)(nil)
