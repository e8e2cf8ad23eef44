package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/agenthands/eventlens/internal/config"
)

var ErrBadCredentials = errors.New("invalid username or password")

const adminSubject = "eventlens-admin"

type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Token struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// Auth issues and checks admin session tokens. With no password configured
// the admin surface is open, the original dashboard behaviour.
type Auth struct {
	Username     string
	PasswordHash []byte
	Secret       []byte
	TTL          time.Duration
	Now          func() time.Time
}

func NewAuth(cfg config.AdminConfig, ttl time.Duration) (*Auth, error) {
	a := &Auth{
		Username: cfg.Username,
		Secret:   []byte(cfg.JWTSecret),
		TTL:      ttl,
		Now:      time.Now,
	}
	switch {
	case cfg.PasswordHash != "":
		a.PasswordHash = []byte(cfg.PasswordHash)
	case cfg.Password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = hash
	}
	if a.Enabled() && len(a.Secret) == 0 {
		return nil, errors.New("admin jwt_secret is required when an admin password is set")
	}
	if a.TTL <= 0 {
		a.TTL = time.Hour
	}
	return a, nil
}

func (a *Auth) Enabled() bool {
	return a != nil && len(a.PasswordHash) > 0
}

// Login checks the credentials and issues a signed token.
func (a *Auth) Login(username, password string) (*Token, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) != 1 {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	now := a.Now()
	expires := now.Add(a.TTL)
	claims := &AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return nil, err
	}
	return &Token{Token: signed, ExpiresAt: expires.Unix()}, nil
}

func (a *Auth) Validate(tokenString string) (*AdminClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return a.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.Subject != adminSubject {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Middleware rejects requests without a valid bearer token.
func (a *Auth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenString == "" || tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin session required"})
			return
		}
		claims, err := a.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}
		c.Set("admin", claims.Username)
		c.Next()
	}
}
