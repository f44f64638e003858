package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// JWTCodecImpl implements domain.TokenCodec. The client never holds the
// signing secret; claims are parsed without signature verification and the
// token is otherwise treated as an opaque bearer credential.
type JWTCodecImpl struct {
	parser *jwt.Parser
}

// NewJWTCodec creates a new JWT codec.
func NewJWTCodec() domain.TokenCodec {
	return &JWTCodecImpl{parser: jwt.NewParser()}
}

// Decode implements domain.TokenCodec.
func (c *JWTCodecImpl) Decode(tokenString string) (*domain.TokenClaims, error) {
	parsed, _, err := c.parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	subject, err := subjectClaim(claims)
	if err != nil {
		return nil, err
	}

	tokenClaims := &domain.TokenClaims{Subject: subject}

	if name, ok := claims["name"].(string); ok {
		tokenClaims.FullName = name
	} else if name, ok := claims["fullName"].(string); ok {
		tokenClaims.FullName = name
	}
	if role, ok := claims["role"].(string); ok {
		tokenClaims.Role = role
	}
	if iat, ok := claims["iat"].(float64); ok {
		tokenClaims.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		tokenClaims.ExpiresAt = int64(exp)
	}

	return tokenClaims, nil
}

// IsExpired implements domain.TokenCodec. Fail-closed: a decode failure or a
// missing expiry claim both count as expired.
func (c *JWTCodecImpl) IsExpired(tokenString string) bool {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == 0 {
		return true
	}
	return !time.Unix(claims.ExpiresAt, 0).After(time.Now())
}

// ExtractIdentity implements domain.TokenCodec. Returns nil when the token
// cannot be decoded.
func (c *JWTCodecImpl) ExtractIdentity(tokenString string) *domain.Identity {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return nil
	}
	return &domain.Identity{
		UserID:   claims.Subject,
		FullName: claims.FullName,
		Role:     domain.ParseRole(claims.Role),
	}
}

// subjectClaim extracts the subject id, accepting the string and numeric
// encodings seen across the API's token variants.
func subjectClaim(claims jwt.MapClaims) (string, error) {
	for _, key := range []string{"sub", "id", "user_id"} {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v, nil
			}
		case float64:
			return fmt.Sprintf("%.0f", v), nil
		}
	}
	return "", domain.ErrTokenMalformed
}
