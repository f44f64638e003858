package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// SessionServiceImpl implements domain.SessionService. It owns the single
// authoritative in-memory session and guards it with a mutex plus a
// monotonic generation counter, so a restore racing a sign-in can never
// clobber the newer state with a stale async result.
type SessionServiceImpl struct {
	mu      sync.Mutex
	gen     uint64
	session domain.Session

	codec        domain.TokenCodec
	store        domain.TokenStore
	bus          domain.EventBus
	api          domain.APIGateway
	log          *logrus.Logger
	persistRetry RetryPolicy
}

// NewSessionService creates a session service. The API gateway is attached
// separately because its transport closes over this service's token.
func NewSessionService(codec domain.TokenCodec, store domain.TokenStore, bus domain.EventBus, log *logrus.Logger) *SessionServiceImpl {
	return &SessionServiceImpl{
		codec:        codec,
		store:        store,
		bus:          bus,
		log:          log,
		persistRetry: DefaultRetryPolicy(),
	}
}

// AttachGateway wires the API gateway once the transport exists.
func (s *SessionServiceImpl) AttachGateway(api domain.APIGateway) {
	s.api = api
}

// Login implements domain.SessionService.
func (s *SessionServiceImpl) Login(ctx context.Context, email, password string) error {
	if s.api == nil {
		return domain.ErrAuthRequired
	}
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.SignIn(ctx, token)
}

// SignIn implements domain.SessionService. An expired or malformed token is
// a recoverable bad-credential condition: the session is cleared and no
// error reaches the caller. The token is persisted fire-and-forget; a
// persistence failure never rolls back the in-memory session.
func (s *SessionServiceImpl) SignIn(ctx context.Context, token string) error {
	if s.codec.IsExpired(token) {
		s.log.Warn("sign-in with expired token, clearing session")
		s.clear()
		return nil
	}

	identity := s.codec.ExtractIdentity(token)
	if identity == nil {
		s.log.Warn("sign-in token carried no identity, clearing session")
		s.clear()
		return nil
	}

	claims, _ := s.codec.Decode(token)

	s.mu.Lock()
	s.gen++
	s.session.Identity = identity
	s.session.Token = token
	s.session.IsLoading = false
	if claims != nil {
		s.session.IssuedAt = time.Unix(claims.IssuedAt, 0)
		s.session.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
	}
	s.mu.Unlock()

	go s.persistToken(token)
	s.bus.Publish(domain.NewEvent(domain.SessionEstablishedEvent, identity.UserID))
	return nil
}

// SignOut implements domain.SessionService. The in-memory clear is
// synchronous; removing the persisted token is best effort.
func (s *SessionServiceImpl) SignOut(ctx context.Context) {
	s.clear()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.Delete(ctx); err != nil {
			s.log.WithError(err).Warn("failed to remove persisted token")
		}
	}()
}

// CheckAuth implements domain.SessionService. It is idempotent and is the
// only path that marks the session hydrated; until then dependent UI treats
// the session as indeterminate, not logged out. All failures normalize to
// signed-out.
func (s *SessionServiceImpl) CheckAuth(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	myGen := s.gen
	s.session.IsLoading = true
	s.mu.Unlock()

	token, loadErr := s.store.Load(ctx)

	valid := false
	var identity *domain.Identity
	var claims *domain.TokenClaims
	switch {
	case loadErr != nil:
		if loadErr != domain.ErrTokenNotFound {
			s.log.WithError(loadErr).Warn("token restore failed, treating as signed out")
		}
	case s.codec.IsExpired(token):
		s.removeStoredToken()
	default:
		identity = s.codec.ExtractIdentity(token)
		if identity == nil {
			s.removeStoredToken()
		} else {
			claims, _ = s.codec.Decode(token)
			valid = true
		}
	}

	s.mu.Lock()
	if s.gen != myGen {
		// A sign-in or sign-out landed while the store was read; the restore
		// result is stale and must not overwrite the newer state.
		s.session.IsLoading = false
		s.session.IsHydrated = true
		s.mu.Unlock()
		return nil
	}
	if valid {
		s.session.Identity = identity
		s.session.Token = token
		if claims != nil {
			s.session.IssuedAt = time.Unix(claims.IssuedAt, 0)
			s.session.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
		}
	} else {
		s.session.Identity = nil
		s.session.Token = ""
		s.session.IssuedAt = time.Time{}
		s.session.ExpiresAt = time.Time{}
	}
	s.session.IsLoading = false
	s.session.IsHydrated = true
	s.mu.Unlock()

	if valid {
		s.bus.Publish(domain.NewEvent(domain.SessionEstablishedEvent, identity.UserID))
	}
	return nil
}

// Current implements domain.SessionService.
func (s *SessionServiceImpl) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.session
	if s.session.Identity != nil {
		identity := *s.session.Identity
		snapshot.Identity = &identity
	}
	return snapshot
}

// Token implements domain.SessionService.
func (s *SessionServiceImpl) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Token
}

// clear nulls the session atomically and notifies dependent stores.
func (s *SessionServiceImpl) clear() {
	s.mu.Lock()
	s.gen++
	wasAuthenticated := s.session.Authenticated()
	s.session.Identity = nil
	s.session.Token = ""
	s.session.IssuedAt = time.Time{}
	s.session.ExpiresAt = time.Time{}
	s.session.IsLoading = false
	s.mu.Unlock()

	if wasAuthenticated {
		s.bus.Publish(domain.NewEvent(domain.SessionClearedEvent, ""))
	}
}

func (s *SessionServiceImpl) persistToken(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.persistRetry.Do(ctx, func() error {
		return s.store.Save(ctx, token)
	})
	if err != nil {
		// The in-memory session stays valid for this process lifetime.
		s.log.WithError(err).Warn("failed to persist session token")
	}
}

func (s *SessionServiceImpl) removeStoredToken() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Delete(ctx); err != nil {
		s.log.WithError(err).Warn("failed to remove stale token")
	}
}

var _ domain.SessionService = (*SessionServiceImpl)(nil)
