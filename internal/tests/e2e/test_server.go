package e2e

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// TestServer is an in-process stand-in for the Baraya REST API. It speaks
// the same envelope contract as production and keeps its state in memory so
// flow tests can seed and inspect it.
type TestServer struct {
	Server  *httptest.Server
	BaseURL string

	mu            sync.Mutex
	secret        []byte
	users         map[string]testUser // keyed by email
	reports       []domain.EmergencyReport
	notifications []domain.Notification
	nextReportID  int
	rejectReports bool
	revokeTokens  bool
}

type testUser struct {
	ID       string
	Password string
	FullName string
	Email    string
	Phone    string
	Role     string
}

// NewTestServer starts the fake API with one seeded citizen account.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &TestServer{
		secret:       []byte("e2e-secret"),
		users:        make(map[string]testUser),
		nextReportID: 1,
	}
	ts.users["asep@example.com"] = testUser{
		ID:       "7",
		Password: "rahasia",
		FullName: "Asep Sunandar",
		Email:    "asep@example.com",
		Phone:    "+628111222333",
		Role:     "USER",
	}

	router := gin.New()
	router.POST("/auth/login", ts.handleLogin)
	router.GET("/notifikasi-darurat", ts.requireAuth, ts.handleListReports)
	router.POST("/notifikasi-darurat", ts.requireAuth, ts.handleSubmitReport)
	router.GET("/users/:id", ts.requireAuth, ts.handleProfile)
	router.GET("/notifikasi", ts.requireAuth, ts.handleNotifications)

	ts.Server = httptest.NewServer(router)
	ts.BaseURL = ts.Server.URL
	t.Cleanup(ts.Server.Close)
	return ts
}

// IssueToken mints a bearer token the way the production backend does.
func (ts *TestServer) IssueToken(t *testing.T, user testUser, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   user.ID,
		"name": user.FullName,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// SeedReport appends a report to the feed, newest first.
func (ts *TestServer) SeedReport(userID string, status domain.ReportStatus) domain.EmergencyReport {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	report := domain.EmergencyReport{
		ID:        ts.nextReportID,
		UserID:    userID,
		Message:   "seeded",
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	ts.nextReportID++
	ts.reports = append([]domain.EmergencyReport{report}, ts.reports...)
	return report
}

// PushNotification prepends an item to the notification feed.
func (ts *TestServer) PushNotification(id int, title, body string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.notifications = append([]domain.Notification{{
		ID:        id,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}}, ts.notifications...)
}

// RejectReports makes report submissions fail with a flagged envelope.
func (ts *TestServer) RejectReports(reject bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.rejectReports = reject
}

// RevokeTokens makes every authenticated endpoint answer 401, simulating
// server-side session invalidation.
func (ts *TestServer) RevokeTokens(revoke bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.revokeTokens = revoke
}

func ok(data any) gin.H {
	return gin.H{"success": true, "message": "ok", "data": data}
}

func fail(message string) gin.H {
	return gin.H{"success": false, "message": message}
}

func (ts *TestServer) requireAuth(c *gin.Context) {
	ts.mu.Lock()
	revoked := ts.revokeTokens
	ts.mu.Unlock()

	header := c.GetHeader("Authorization")
	if revoked || !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, fail("unauthorized"))
		return
	}
	c.Next()
}

func (ts *TestServer) handleLogin(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid request"))
		return
	}

	ts.mu.Lock()
	user, found := ts.users[body.Email]
	ts.mu.Unlock()
	if !found || user.Password != body.Password {
		c.JSON(http.StatusUnauthorized, fail("email atau password salah"))
		return
	}

	claims := jwt.MapClaims{
		"id":   user.ID,
		"name": user.FullName,
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, fail("token issue failed"))
		return
	}
	c.JSON(http.StatusOK, ok(gin.H{"token": signed}))
}

func (ts *TestServer) handleListReports(c *gin.Context) {
	ts.mu.Lock()
	list := append([]domain.EmergencyReport(nil), ts.reports...)
	ts.mu.Unlock()
	c.JSON(http.StatusOK, ok(list))
}

func (ts *TestServer) handleSubmitReport(c *gin.Context) {
	ts.mu.Lock()
	reject := ts.rejectReports
	ts.mu.Unlock()
	if reject {
		c.JSON(http.StatusUnprocessableEntity, fail("lokasi tidak valid"))
		return
	}

	latitude, _ := strconv.ParseFloat(c.PostForm("latitude"), 64)
	longitude, _ := strconv.ParseFloat(c.PostForm("longitude"), 64)
	message := c.PostForm("pesan")
	if message == "" {
		c.JSON(http.StatusBadRequest, fail("pesan wajib diisi"))
		return
	}

	report := domain.EmergencyReport{
		UserID:    c.PostForm("userId"),
		Latitude:  latitude,
		Longitude: longitude,
		Message:   message,
		Status:    domain.ReportPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if file, err := c.FormFile("foto"); err == nil {
		report.PhotoURL = "/uploads/" + file.Filename
	}

	ts.mu.Lock()
	report.ID = ts.nextReportID
	ts.nextReportID++
	ts.reports = append([]domain.EmergencyReport{report}, ts.reports...)
	ts.mu.Unlock()

	c.JSON(http.StatusCreated, ok(report))
}

func (ts *TestServer) handleProfile(c *gin.Context) {
	id := c.Param("id")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, user := range ts.users {
		if user.ID == id {
			c.JSON(http.StatusOK, ok(domain.UserProfile{
				ID:          user.ID,
				FullName:    user.FullName,
				Email:       user.Email,
				PhoneNumber: user.Phone,
				Role:        user.Role,
			}))
			return
		}
	}
	c.JSON(http.StatusNotFound, fail("user tidak ditemukan"))
}

func (ts *TestServer) handleNotifications(c *gin.Context) {
	ts.mu.Lock()
	list := append([]domain.Notification(nil), ts.notifications...)
	ts.mu.Unlock()
	c.JSON(http.StatusOK, ok(list))
}
