package domain

import "context"

// TokenCodec decodes and validates bearer token payloads. Pure and
// stateless; any decode failure is treated as an expired credential.
type TokenCodec interface {
	Decode(token string) (*TokenClaims, error)
	IsExpired(token string) bool
	ExtractIdentity(token string) *Identity
}

// TokenStore is the encrypted persistence for exactly one credential, the
// session token. Writes are idempotent overwrites under a fixed service
// namespace.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// SessionService owns the single authoritative in-memory session.
type SessionService interface {
	// Login exchanges credentials for a token against the remote API, then
	// runs the SignIn path on it.
	Login(ctx context.Context, email, password string) error
	// SignIn establishes the session from a bearer token. Expired or
	// malformed tokens clear the session without returning an error.
	SignIn(ctx context.Context, token string) error
	// SignOut clears the session and best-effort removes the stored token.
	SignOut(ctx context.Context)
	// CheckAuth restores the session from the token store on startup. It is
	// the only path that marks the session hydrated.
	CheckAuth(ctx context.Context) error
	// Current returns a snapshot of the session state.
	Current() Session
	// Token returns the current bearer token, or "" when signed out.
	Token() string
}

// ReportService owns the report list, the single active-report slot, and the
// submission pipeline.
type ReportService interface {
	FetchActiveReport(ctx context.Context, userID string) error
	CreateReport(ctx context.Context, input ReportInput) (*EmergencyReport, error)
	CompleteReport()
	TrackingSteps() []TrackingStep
	ActiveReport() *EmergencyReport
	Reports() []EmergencyReport
	LastError() error
}

// ProfileService caches the profile of the signed-in user, driven by session
// events.
type ProfileService interface {
	Profile() *UserProfile
	LastError() error
}

// ImageCompressor shrinks an image file under a size budget before upload.
// Compression is best effort; implementations return the original path on
// any failure.
type ImageCompressor interface {
	Compress(ctx context.Context, path string) string
}

// ReportCache persists the last known active report so the UI can render it
// on cold start before the first fetch answers.
type ReportCache interface {
	SaveActive(ctx context.Context, report *EmergencyReport) error
	LoadActive(ctx context.Context, userID string) (*EmergencyReport, error)
	Clear(ctx context.Context, userID string) error
}

// NotificationSink is one delivery channel of the relay fan-out.
type NotificationSink interface {
	Notify(ctx context.Context, notification Notification) error
}

// APIGateway is the remote Baraya REST API as consumed by the client core.
// Every authenticated request carries the current bearer token; a 401 from
// any endpoint except login triggers the global sign-out hook.
type APIGateway interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListReports(ctx context.Context) ([]EmergencyReport, error)
	SubmitReport(ctx context.Context, input ReportInput) (*EmergencyReport, error)
	FetchProfile(ctx context.Context, userID string) (*UserProfile, error)
	ListNotifications(ctx context.Context) ([]Notification, error)
}
