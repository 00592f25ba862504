package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/bssm-backend/internal/config"
	"github.com/arzan03/bssm-backend/internal/db"
	"github.com/arzan03/bssm-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrUnauthorized is returned for unknown, inactive or mismatched credentials.
// It never says which of those it was.
var ErrUnauthorized = errors.New("invalid credentials")

// TokenIssuer produces the session marker handed out on login.
type TokenIssuer interface {
	Issue(account models.Account) (string, error)
}

// DemoTokenIssuer returns Prefix followed by the account's storage id.
type DemoTokenIssuer struct {
	Prefix string
}

func (i DemoTokenIssuer) Issue(account models.Account) (string, error) {
	return i.Prefix + account.ID.Hex(), nil
}

// JWTTokenIssuer signs an HS256 token whose subject is the account's storage id.
type JWTTokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func (i JWTTokenIssuer) Issue(account models.Account) (string, error) {
	now := time.Now
	if i.now != nil {
		now = i.now
	}
	claims := jwt.MapClaims{
		"sub":  account.ID.Hex(),
		"nik":  account.Nik,
		"role": account.Role,
		"iat":  now().Unix(),
		"exp":  now().Add(i.TTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.Secret)
}

// NewTokenIssuer picks the issuer configured by TOKEN_MODE.
func NewTokenIssuer(cfg *config.Config) TokenIssuer {
	if cfg.TokenMode == "jwt" {
		return JWTTokenIssuer{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL}
	}
	return DemoTokenIssuer{Prefix: cfg.TokenPrefix}
}

type AuthService struct {
	store  db.Store
	tokens TokenIssuer
}

func NewAuthService(store db.Store, tokens TokenIssuer) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Login authenticates an active account by NIK and plain-text password.
func (s *AuthService) Login(ctx context.Context, nik, password string) (models.LoginResponse, error) {
	var account models.Account
	err := s.store.FindOne(ctx, db.AccountCollection, bson.M{
		"nik":      nik,
		"password": password,
		"active":   true,
	}, &account)
	if errors.Is(err, db.ErrNotFound) {
		return models.LoginResponse{}, ErrUnauthorized
	}
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("lookup account: %w", err)
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return models.LoginResponse{
		Nik:   account.Nik,
		Name:  account.Name,
		Role:  account.Role,
		Token: token,
	}, nil
}
