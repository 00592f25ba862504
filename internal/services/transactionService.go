package services

import (
	"context"
	"fmt"
	"math"

	"github.com/arzan03/bssm-backend/internal/db"
	"github.com/arzan03/bssm-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// DefaultListLimit caps a transaction listing when the caller gives no limit.
const DefaultListLimit = 200

type TransactionService struct {
	store db.Store
}

func NewTransactionService(store db.Store) *TransactionService {
	return &TransactionService{store: store}
}

// Create stores a deposit. Any total set by the caller is replaced with
// weight * price.
func (s *TransactionService) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	tx.Total = tx.Weight * tx.Price
	if math.IsInf(tx.Total, 0) {
		return models.Transaction{}, models.NewValidationError(
			[]string{"body", "total"}, "Input should be a finite number", "finite_number")
	}
	if err := models.Validate("body", tx); err != nil {
		return models.Transaction{}, err
	}

	id, err := s.store.CreateDocument(ctx, db.TransactionCollection, tx)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	tx.ID = id
	return tx, nil
}

// List returns at most limit transactions in store order.
func (s *TransactionService) List(ctx context.Context, limit int64) ([]bson.M, error) {
	docs, err := s.store.GetDocuments(ctx, db.TransactionCollection, bson.M{}, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return docs, nil
}
