package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

const loginPath = "/auth/login"

// TokenSource supplies the current bearer token, or "" when signed out.
type TokenSource func() string

// UnauthorizedHook is invoked when any endpoint except login answers 401.
type UnauthorizedHook func()

// ClientImpl implements domain.APIGateway against the Baraya REST API.
// Every request carries the current bearer token when one exists; a 401 from
// any endpoint other than login fires the global sign-out hook. Callers
// never opt into that policy per request.
type ClientImpl struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

// bearerTransport attaches the Authorization header and watches for 401s.
type bearerTransport struct {
	next         http.RoundTripper
	tokenSource  TokenSource
	unauthorized UnauthorizedHook
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokenSource(); token != "" {
		// RoundTrippers must not mutate the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && !strings.HasSuffix(req.URL.Path, loginPath) {
		if t.unauthorized != nil {
			t.unauthorized()
		}
	}
	return resp, nil
}

// NewClient creates the API gateway. baseURL includes the versioned path
// prefix. The 10 second timeout covers every JSON endpoint; the multipart
// submission path rides the same client.
func NewClient(baseURL string, timeout time.Duration, tokenSource TokenSource, unauthorized UnauthorizedHook, log *logrus.Logger) domain.APIGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ClientImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &bearerTransport{
				next:         http.DefaultTransport,
				tokenSource:  tokenSource,
				unauthorized: unauthorized,
			},
		},
		log: log,
	}
}

// envelope is the common response wrapper of the Baraya API.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// failed reports whether the server flagged the request as unsuccessful.
// An absent success flag on a 2xx response counts as success.
func (e envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

// Login implements domain.APIGateway. Exempt from the 401 hook.
func (c *ClientImpl) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", domain.ErrUnauthorized
	}

	var env envelope
	if err := decodeEnvelope(resp, &env); err != nil {
		return "", err
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return data.Token, nil
}

// ListReports implements domain.APIGateway. The server returns the full
// report collection; filtering by user happens client-side.
func (c *ClientImpl) ListReports(ctx context.Context) ([]domain.EmergencyReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/notifikasi-darurat", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := decodeEnvelope(resp, &env); err != nil {
		return nil, err
	}

	var reports []domain.EmergencyReport
	if err := json.Unmarshal(env.Data, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode report list: %w", err)
	}
	return reports, nil
}

// SubmitReport implements domain.APIGateway. The multipart contract:
// latitude, longitude, pesan, status, optional userId and dinasId, file
// field foto. The photo path is expected to be preprocessed already.
func (c *ClientImpl) SubmitReport(ctx context.Context, input domain.ReportInput) (*domain.EmergencyReport, error) {
	form := NewForm().
		Field("latitude", strconv.FormatFloat(input.Latitude, 'f', -1, 64)).
		Field("longitude", strconv.FormatFloat(input.Longitude, 'f', -1, 64)).
		Field("pesan", input.Message).
		Field("status", string(domain.ReportPending)).
		OptionalField("userId", input.UserID)
	if input.DinasID != nil {
		form.Field("dinasId", strconv.Itoa(*input.DinasID))
	}
	if input.PhotoPath != "" {
		form.File("foto", photoFileName(input.PhotoMime), input.PhotoPath)
	}

	body, contentType, err := form.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to build submission form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notifikasi-darurat", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("report submission failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewSubmissionError(resp.StatusCode, "")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, domain.NewSubmissionError(resp.StatusCode, "")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || env.failed() {
		return nil, domain.NewSubmissionError(resp.StatusCode, env.Message)
	}

	var report domain.EmergencyReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		return nil, domain.NewSubmissionError(resp.StatusCode, env.Message)
	}
	return &report, nil
}

// FetchProfile implements domain.APIGateway.
func (c *ClientImpl) FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/"+userID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := decodeEnvelope(resp, &env); err != nil {
		return nil, err
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// ListNotifications implements domain.APIGateway.
func (c *ClientImpl) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/notifikasi", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := decodeEnvelope(resp, &env); err != nil {
		return nil, err
	}

	var items []domain.Notification
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return items, nil
}

// decodeEnvelope reads and validates a JSON envelope response.
func decodeEnvelope(resp *http.Response, env *envelope) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return fmt.Errorf("malformed response (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || env.failed() {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("request failed (%d): %s", resp.StatusCode, msg)
	}
	return nil
}
