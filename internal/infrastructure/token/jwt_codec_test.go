package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestJWTCodec_Decode(t *testing.T) {
	codec := NewJWTCodec()
	now := time.Now()

	tests := []struct {
		name          string
		token         string
		expectedError error
		validate      func(t *testing.T, claims *domain.TokenClaims)
	}{
		{
			name: "well formed token",
			token: signToken(t, jwt.MapClaims{
				"sub":  "17",
				"name": "Dewi Lestari",
				"role": "USER",
				"iat":  now.Unix(),
				"exp":  now.Add(time.Hour).Unix(),
			}),
			validate: func(t *testing.T, claims *domain.TokenClaims) {
				if claims.Subject != "17" {
					t.Errorf("subject = %q, want 17", claims.Subject)
				}
				if claims.FullName != "Dewi Lestari" {
					t.Errorf("full name = %q, want Dewi Lestari", claims.FullName)
				}
				if claims.Role != "USER" {
					t.Errorf("role = %q, want USER", claims.Role)
				}
				if claims.ExpiresAt != now.Add(time.Hour).Unix() {
					t.Errorf("exp = %d, want %d", claims.ExpiresAt, now.Add(time.Hour).Unix())
				}
			},
		},
		{
			name: "numeric subject claim",
			token: signToken(t, jwt.MapClaims{
				"id":  float64(42),
				"exp": now.Add(time.Hour).Unix(),
			}),
			validate: func(t *testing.T, claims *domain.TokenClaims) {
				if claims.Subject != "42" {
					t.Errorf("subject = %q, want 42", claims.Subject)
				}
			},
		},
		{
			name: "fullName claim variant",
			token: signToken(t, jwt.MapClaims{
				"sub":      "3",
				"fullName": "Budi Santoso",
				"exp":      now.Add(time.Hour).Unix(),
			}),
			validate: func(t *testing.T, claims *domain.TokenClaims) {
				if claims.FullName != "Budi Santoso" {
					t.Errorf("full name = %q, want Budi Santoso", claims.FullName)
				}
			},
		},
		{
			name:          "garbage token",
			token:         "not-a-token",
			expectedError: domain.ErrTokenMalformed,
		},
		{
			name:          "missing subject",
			token:         signToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}),
			expectedError: domain.ErrTokenMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Decode(tt.token)
			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, claims)
		})
	}
}

func TestJWTCodec_IsExpired(t *testing.T) {
	codec := NewJWTCodec()
	now := time.Now()

	tests := []struct {
		name    string
		token   string
		expired bool
	}{
		{
			name:    "future expiry",
			token:   signToken(t, jwt.MapClaims{"sub": "1", "exp": now.Add(time.Hour).Unix()}),
			expired: false,
		},
		{
			name:    "past expiry",
			token:   signToken(t, jwt.MapClaims{"sub": "1", "exp": now.Add(-time.Minute).Unix()}),
			expired: true,
		},
		{
			name:    "missing expiry claim fails closed",
			token:   signToken(t, jwt.MapClaims{"sub": "1"}),
			expired: true,
		},
		{
			name:    "undecodable token fails closed",
			token:   "garbage",
			expired: true,
		},
		{
			name:    "past expiry with malformed subject still expired",
			token:   signToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}),
			expired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codec.IsExpired(tt.token); got != tt.expired {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestJWTCodec_ExtractIdentity(t *testing.T) {
	codec := NewJWTCodec()
	now := time.Now()

	t.Run("round trip", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"sub":  "99",
			"name": "Siti Rahma",
			"role": "STAFF",
			"iat":  now.Unix(),
			"exp":  now.Add(time.Hour).Unix(),
		})
		identity := codec.ExtractIdentity(tok)
		if identity == nil {
			t.Fatal("identity is nil")
		}
		if identity.UserID != "99" {
			t.Errorf("user id = %q, want 99", identity.UserID)
		}
		if identity.FullName != "Siti Rahma" {
			t.Errorf("full name = %q, want Siti Rahma", identity.FullName)
		}
		if identity.Role != domain.RoleStaff {
			t.Errorf("role = %q, want %q", identity.Role, domain.RoleStaff)
		}
	})

	t.Run("decode failure yields nil", func(t *testing.T) {
		if identity := codec.ExtractIdentity("garbage"); identity != nil {
			t.Errorf("expected nil identity, got %+v", identity)
		}
	})

	t.Run("unknown role defaults to user", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"sub": "5", "role": "root", "exp": now.Add(time.Hour).Unix()})
		identity := codec.ExtractIdentity(tok)
		if identity == nil {
			t.Fatal("identity is nil")
		}
		if identity.Role != domain.RoleUser {
			t.Errorf("role = %q, want %q", identity.Role, domain.RoleUser)
		}
	})
}
