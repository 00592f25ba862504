package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/arzan03/bssm-backend/internal/config"
	"github.com/arzan03/bssm-backend/internal/db"
	"github.com/arzan03/bssm-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func seededStore(t *testing.T) *db.MemoryStore {
	t.Helper()
	store := db.NewMemoryStore()
	log, _ := test.NewNullLogger()
	Bootstrap(context.Background(), store, log)
	return store
}

func accountID(t *testing.T, store db.Store, nik string) string {
	t.Helper()
	var acc models.Account
	require.NoError(t, store.FindOne(context.Background(), db.AccountCollection, bson.M{"nik": nik}, &acc))
	return acc.ID.Hex()
}

func TestLogin_Success(t *testing.T) {
	store := seededStore(t)
	svc := NewAuthService(store, DemoTokenIssuer{Prefix: "demo-"})

	resp, err := svc.Login(context.Background(), "9999999999999999", "demo123")
	require.NoError(t, err)

	assert.Equal(t, "9999999999999999", resp.Nik)
	assert.Equal(t, "Admin Demo", resp.Name)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.Equal(t, "demo-"+accountID(t, store, "9999999999999999"), resp.Token)
}

func TestLogin_Unauthorized(t *testing.T) {
	store := seededStore(t)
	inactive := models.NewAccount("3333333333333333", "Inactive", "demo123")
	inactive.Active = false
	_, err := store.CreateDocument(context.Background(), db.AccountCollection, inactive)
	require.NoError(t, err)

	svc := NewAuthService(store, DemoTokenIssuer{Prefix: "demo-"})

	tests := []struct {
		name     string
		nik      string
		password string
	}{
		{"wrong password", "1111111111111111", "nope"},
		{"unknown nik", "0000000000000000", "demo123"},
		{"inactive account", "3333333333333333", "demo123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.nik, tt.password)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestLogin_StoreError(t *testing.T) {
	store := &faultyStore{MemoryStore: db.NewMemoryStore(), findErr: errors.New("connection reset")}
	svc := NewAuthService(store, DemoTokenIssuer{Prefix: "demo-"})

	_, err := svc.Login(context.Background(), "1111111111111111", "demo123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)

	_, err = NewAuthService(&db.MongoStore{}, DemoTokenIssuer{}).Login(context.Background(), "x", "y")
	assert.ErrorIs(t, err, db.ErrUnavailable)
}

func TestJWTTokenIssuer(t *testing.T) {
	store := seededStore(t)
	secret := []byte("s3cret")
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := JWTTokenIssuer{Secret: secret, TTL: time.Hour, now: func() time.Time { return fixed }}

	resp, err := NewAuthService(store, issuer).Login(context.Background(), "2222222222222222", "demo123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, resp.Role)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }))
	require.NoError(t, err)
	assert.Equal(t, accountID(t, store, "2222222222222222"), claims["sub"])
	assert.Equal(t, models.RoleStaff, claims["role"])
}

func TestNewTokenIssuer(t *testing.T) {
	demo := NewTokenIssuer(&config.Config{TokenMode: "demo", TokenPrefix: "demo-"})
	assert.IsType(t, DemoTokenIssuer{}, demo)

	signed := NewTokenIssuer(&config.Config{TokenMode: "jwt", JWTSecret: "k", JWTTTL: time.Minute})
	assert.IsType(t, JWTTokenIssuer{}, signed)

	tok, err := signed.Issue(models.NewAccount("1", "A", "p"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(tok, "."))
}
