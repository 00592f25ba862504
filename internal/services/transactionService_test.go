package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/arzan03/bssm-backend/internal/db"
	"github.com/arzan03/bssm-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deposit(weight, price float64) models.Transaction {
	return models.Transaction{
		Date:     "2024-01-01",
		Customer: "Budi",
		Material: "plastic",
		Weight:   weight,
		Price:    price,
	}
}

func TestTransactionService_CreateComputesTotal(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	svc := NewTransactionService(store)

	cases := []struct{ weight, price float64 }{
		{10, 2000},
		{0, 1500},
		{2.5, 0.1},
		{0.3, 3},
	}
	for _, c := range cases {
		in := deposit(c.weight, c.price)
		in.Total = 999999 // ignored
		tx, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, c.weight*c.price, tx.Total)
		assert.NotEmpty(t, tx.ID)
	}

	docs, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, docs, len(cases))
	for _, d := range docs {
		assert.Equal(t, d["weight"].(float64)*d["price"].(float64), d["total"])
	}
}

func TestTransactionService_CreateScenario(t *testing.T) {
	tx, err := NewTransactionService(db.NewMemoryStore()).Create(context.Background(), deposit(10, 2000))
	require.NoError(t, err)
	assert.Equal(t, 20000.0, tx.Total)
}

func TestTransactionService_CreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	svc := NewTransactionService(store)

	for _, in := range []models.Transaction{
		deposit(-1, 100),
		deposit(1, -100),
		deposit(math.MaxFloat64, math.MaxFloat64),
	} {
		_, err := svc.Create(ctx, in)
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)
	}

	n, err := store.CountDocuments(ctx, db.TransactionCollection, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTransactionService_ListLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(db.NewMemoryStore())
	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, deposit(float64(i), 10))
		require.NoError(t, err)
	}

	for _, limit := range []int64{1, 5, 7, 20} {
		docs, err := svc.List(ctx, limit)
		require.NoError(t, err)
		assert.LessOrEqual(t, int64(len(docs)), limit)
		for _, d := range docs {
			id, ok := d["_id"].(string)
			assert.True(t, ok)
			assert.NotEmpty(t, id)
		}
	}
}

func TestTransactionService_StoreErrors(t *testing.T) {
	ctx := context.Background()
	store := newFaultyStore()
	store.createErr = db.ErrUnavailable
	store.getErr = errors.New("socket closed")
	svc := NewTransactionService(store)

	_, err := svc.Create(ctx, deposit(1, 1))
	assert.ErrorIs(t, err, db.ErrUnavailable)

	_, err = svc.List(ctx, DefaultListLimit)
	assert.Error(t, err)
}
