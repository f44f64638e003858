package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// DefaultCompleteClearDelay is how long the completed report stays in the
// active slot so the UI can animate the transition before the slot empties.
const DefaultCompleteClearDelay = 3 * time.Second

// ReportServiceImpl implements domain.ReportService. It owns the report
// collection and the single active-report slot; the slot aliases an element
// of the collection or is nil.
type ReportServiceImpl struct {
	mu        sync.Mutex
	reports   []domain.EmergencyReport
	active    *domain.EmergencyReport
	lastErr   error
	activeGen uint64

	api        domain.APIGateway
	session    domain.SessionService
	compressor domain.ImageCompressor
	cache      domain.ReportCache
	bus        domain.EventBus
	log        *logrus.Logger
	clearDelay time.Duration
}

// NewReportService creates the report engine. It subscribes to session
// establishment to warm the active slot from the local cache, so a cold
// start shows the last known report before the first fetch answers.
func NewReportService(
	api domain.APIGateway,
	session domain.SessionService,
	compressor domain.ImageCompressor,
	cache domain.ReportCache,
	bus domain.EventBus,
	clearDelay time.Duration,
	log *logrus.Logger,
) *ReportServiceImpl {
	if clearDelay <= 0 {
		clearDelay = DefaultCompleteClearDelay
	}
	s := &ReportServiceImpl{
		api:        api,
		session:    session,
		compressor: compressor,
		cache:      cache,
		bus:        bus,
		log:        log,
		clearDelay: clearDelay,
	}
	bus.Subscribe(domain.SessionEstablishedEvent, func(e domain.Event) {
		s.warmFromCache(e.UserID)
	})
	return s
}

// FetchActiveReport implements domain.ReportService. The server returns
// every report; the client filters to the current user's first non-terminal
// one (server order, most recent first). A fetch failure records the error
// and leaves existing in-memory state untouched.
func (s *ReportServiceImpl) FetchActiveReport(ctx context.Context, userID string) error {
	list, err := s.api.ListReports(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	activeIdx := -1
	for i, report := range list {
		if report.UserID == userID && report.Active() {
			activeIdx = i
			break
		}
	}

	s.mu.Lock()
	s.activeGen++
	s.reports = list
	if activeIdx >= 0 {
		s.active = &s.reports[activeIdx]
	} else {
		s.active = nil
	}
	s.lastErr = nil
	var activeCopy *domain.EmergencyReport
	if s.active != nil {
		c := *s.active
		activeCopy = &c
	}
	s.mu.Unlock()

	s.syncCache(userID, activeCopy)
	return nil
}

// CreateReport implements domain.ReportService. A valid session token is
// required; the photo, when present, runs through the compressor before the
// multipart upload. A failed submission never touches the report list or
// the active slot.
func (s *ReportServiceImpl) CreateReport(ctx context.Context, input domain.ReportInput) (*domain.EmergencyReport, error) {
	if s.session.Token() == "" {
		return nil, domain.ErrAuthRequired
	}

	if input.PhotoPath != "" {
		input.PhotoPath = s.compressor.Compress(ctx, input.PhotoPath)
	}

	created, err := s.api.SubmitReport(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.activeGen++
	s.reports = append([]domain.EmergencyReport{*created}, s.reports...)
	s.active = &s.reports[0]
	s.lastErr = nil
	s.mu.Unlock()

	s.syncCache(created.UserID, created)
	s.bus.Publish(domain.NewEvent(domain.ReportCreatedEvent, created.UserID).WithReport(created))

	result := *created
	return &result, nil
}

// CompleteReport implements domain.ReportService. This is an optimistic
// local-only transition: the status flips to completed immediately without
// a server call, and after a short delay the active slot empties. The next
// FetchActiveReport is the reconciliation point with server state.
func (s *ReportServiceImpl) CompleteReport() {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return
	}
	s.active.Status = domain.ReportCompleted
	s.active.UpdatedAt = time.Now()
	s.activeGen++
	myGen := s.activeGen
	userID := s.active.UserID
	completed := *s.active
	s.mu.Unlock()

	s.bus.Publish(domain.NewEvent(domain.ReportCompletedEvent, userID).WithReport(&completed))

	time.AfterFunc(s.clearDelay, func() {
		s.mu.Lock()
		stale := s.activeGen != myGen
		if !stale {
			s.active = nil
		}
		s.mu.Unlock()
		if !stale {
			s.syncCache(userID, nil)
		}
	})
}

// TrackingSteps implements domain.ReportService.
func (s *ReportServiceImpl) TrackingSteps() []domain.TrackingStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.DeriveTrackingSteps(s.active)
}

// ActiveReport implements domain.ReportService.
func (s *ReportServiceImpl) ActiveReport() *domain.EmergencyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	report := *s.active
	return &report
}

// Reports implements domain.ReportService.
func (s *ReportServiceImpl) Reports() []domain.EmergencyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.EmergencyReport(nil), s.reports...)
}

// LastError implements domain.ReportService.
func (s *ReportServiceImpl) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// warmFromCache fills an empty active slot from the local cache.
func (s *ReportServiceImpl) warmFromCache(userID string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cached, err := s.cache.LoadActive(ctx, userID)
	if err != nil {
		s.log.WithError(err).Warn("report cache read failed")
		return
	}
	if cached == nil || !cached.Active() {
		return
	}

	s.mu.Lock()
	if s.active == nil && len(s.reports) == 0 {
		s.reports = []domain.EmergencyReport{*cached}
		s.active = &s.reports[0]
	}
	s.mu.Unlock()
}

// syncCache mirrors the active slot into the local cache, best effort.
func (s *ReportServiceImpl) syncCache(userID string, active *domain.EmergencyReport) {
	if s.cache == nil || userID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var err error
	if active != nil {
		err = s.cache.SaveActive(ctx, active)
	} else {
		err = s.cache.Clear(ctx, userID)
	}
	if err != nil {
		s.log.WithError(err).Warn("report cache write failed")
	}
}

var _ domain.ReportService = (*ReportServiceImpl)(nil)
