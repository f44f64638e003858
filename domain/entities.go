package domain

import "time"

// Role is the access level carried in the bearer token.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
	RoleUser  Role = "USER"
)

// ParseRole maps a raw claim value to a Role, defaulting to RoleUser.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin, RoleStaff, RoleUser:
		return Role(raw)
	default:
		return RoleUser
	}
}

// Identity is the user record projected out of a bearer token's claims.
type Identity struct {
	UserID   string
	FullName string
	Role     Role
}

// TokenClaims represents the claims the client inspects in a bearer token.
// The signature is verified server-side only; the client treats the token as
// an opaque credential and reads claims for UX and expiry purposes.
type TokenClaims struct {
	Subject   string
	FullName  string
	Role      string
	IssuedAt  int64
	ExpiresAt int64
}

// Session is the single authoritative in-memory session. Invariant: Identity
// is non-nil if and only if Token is non-empty; partial states are never
// exposed.
type Session struct {
	Identity   *Identity
	Token      string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	IsHydrated bool
	IsLoading  bool
}

// Authenticated reports whether the session holds a signed-in user.
func (s Session) Authenticated() bool {
	return s.Identity != nil && s.Token != ""
}

// ReportStatus is the server-authoritative lifecycle state of an emergency
// report: pending → accepted → in_progress → completed, with cancelled
// reachable server-side from pending or accepted.
type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportAccepted   ReportStatus = "accepted"
	ReportInProgress ReportStatus = "in_progress"
	ReportCompleted  ReportStatus = "completed"
	ReportCancelled  ReportStatus = "cancelled"
)

// Terminal reports whether the status can no longer progress.
func (s ReportStatus) Terminal() bool {
	return s == ReportCompleted || s == ReportCancelled
}

// EmergencyReport is one citizen emergency report as served by the API.
type EmergencyReport struct {
	ID          int          `json:"id"`
	UserID      string       `json:"userId"`
	DinasID     *int         `json:"dinasId,omitempty"`
	DinasNama   string       `json:"dinasNama,omitempty"`
	FullName    string       `json:"fullName"`
	PhoneNumber string       `json:"phoneNumber"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	Message     string       `json:"pesan"`
	Status      ReportStatus `json:"status"`
	PhotoURL    string       `json:"photoUrl,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Active reports whether this report occupies the user's single non-terminal
// slot.
func (r EmergencyReport) Active() bool {
	return !r.Status.Terminal()
}

// ReportInput carries the fields of a new report submission. Status is fixed
// to pending by the engine; UserID and DinasID are optional scalars. A photo
// is attached by path plus mime type and is compressed before upload.
type ReportInput struct {
	Latitude  float64
	Longitude float64
	Message   string
	UserID    string
	DinasID   *int
	PhotoPath string
	PhotoMime string
}

// TrackingStep is a UI-facing projection of a report's status onto a fixed
// ordered checklist. Derived on every read, never stored.
type TrackingStep struct {
	Status      ReportStatus
	Label       string
	Description string
	Icon        string
	IsCompleted bool
	IsActive    bool
	Timestamp   *time.Time
}

// UserProfile is the profile record fetched as a session side effect.
type UserProfile struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address,omitempty"`
	Role        string `json:"role"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

// Notification is one item of the remote notification feed the relay polls.
type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"judul"`
	Body      string    `json:"pesan"`
	CreatedAt time.Time `json:"createdAt"`
}
