package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"visual-library-backend/internal/config"
	"visual-library-backend/internal/models"
)

const (
	UserIDKey      = "user_id"
	AccessTokenKey = "access_token"
	// AuthenticatedKey is true when a valid token was presented.
	AuthenticatedKey = "authenticated"
)

var (
	errMissingHeader = errors.New("missing authorization header")
	errHeaderFormat  = errors.New("invalid authorization header format")
	errMissingSub    = errors.New("missing user id in token")
)

// Auth verifies Supabase-issued HS256 access tokens.
type Auth struct {
	secret []byte
}

func NewAuth(cfg *config.Config) *Auth {
	return &Auth{secret: []byte(cfg.SupabaseJWTSecret)}
}

// RequireAuth rejects requests without a valid bearer token.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, sub, err := a.authenticate(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: err.Error(),
			})
			return
		}
		setIdentity(c, token, sub)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through anonymously.
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, sub, err := a.authenticate(c.GetHeader("Authorization"))
		if err != nil {
			c.Set(AuthenticatedKey, false)
			c.Next()
			return
		}
		setIdentity(c, token, sub)
		c.Next()
	}
}

func setIdentity(c *gin.Context, token, sub string) {
	c.Set(UserIDKey, sub)
	c.Set(AccessTokenKey, token)
	c.Set(AuthenticatedKey, true)
}

func (a *Auth) authenticate(header string) (string, string, error) {
	if header == "" {
		return "", "", errMissingHeader
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "", errHeaderFormat
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", "", errors.New("empty token")
	}

	// Try URL decoding in case the token was URL-encoded
	if decoded, err := url.QueryUnescape(tokenString); err == nil {
		tokenString = decoded
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		if len(a.secret) == 0 {
			return nil, jwt.ErrSignatureInvalid
		}
		// Supabase JWT secret is used directly as the signing key
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return "", "", errors.New("token signature is invalid")
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", "", errors.New("token has expired")
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", "", errors.New("token is malformed")
		}
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", "", errMissingSub
	}
	return tokenString, sub, nil
}
