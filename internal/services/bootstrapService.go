package services

import (
	"context"
	"fmt"

	"github.com/arzan03/bssm-backend/internal/db"
	"github.com/arzan03/bssm-backend/internal/models"
	"github.com/sirupsen/logrus"
)

const demoPassword = "demo123"

// DemoAccounts are seeded into an empty account collection.
func DemoAccounts() []models.Account {
	admin := models.NewAccount("9999999999999999", "Admin Demo", demoPassword)
	admin.Role = models.RoleAdmin
	staff := models.NewAccount("2222222222222222", "Pengurus Demo", demoPassword)
	staff.Role = models.RoleStaff

	return []models.Account{
		models.NewAccount("1111111111111111", "Warga Demo", demoPassword),
		staff,
		admin,
	}
}

// Bootstrap seeds the demo accounts when the account collection is empty.
// It never fails: an unavailable store is skipped and errors are only logged.
//
// Two processes starting against the same empty store can both see zero
// accounts; the unique index on nik makes the slower one fail, and that
// failure is swallowed like any other.
func Bootstrap(ctx context.Context, store db.Store, log logrus.FieldLogger) {
	if !store.Available() {
		log.Info("Store unavailable, skipping account bootstrap")
		return
	}

	seeded, err := seedAccounts(ctx, store)
	if err != nil {
		log.WithError(err).Warn("Account bootstrap failed")
		return
	}
	if seeded > 0 {
		log.WithField("accounts", seeded).Info("Seeded demo accounts")
	}
}

func seedAccounts(ctx context.Context, store db.Store) (int, error) {
	n, err := store.CountDocuments(ctx, db.AccountCollection, nil)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	accounts := DemoAccounts()
	docs := make([]any, 0, len(accounts))
	for _, a := range accounts {
		if err := models.Validate("account", a); err != nil {
			return 0, err
		}
		docs = append(docs, a)
	}

	if _, err := store.InsertMany(ctx, db.AccountCollection, docs); err != nil {
		return 0, fmt.Errorf("insert demo accounts: %w", err)
	}
	if err := store.CreateUniqueIndex(ctx, db.AccountCollection, "nik"); err != nil {
		return len(docs), fmt.Errorf("index account.nik: %w", err)
	}
	return len(docs), nil
}
