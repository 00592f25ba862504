package handlers

import (
	"github.com/arzan03/bssm-backend/internal/metrics"
	"github.com/arzan03/bssm-backend/internal/models"
	"github.com/arzan03/bssm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// CreateTransaction records a deposit and returns it with its total and id.
func (h *Handler) CreateTransaction(c *fiber.Ctx) error {
	var input models.TransactionInput
	if err := parseBody(c, &input); err != nil {
		return h.respondError(c, err, "create transaction")
	}

	tx, err := h.transactions.Create(c.UserContext(), input.Transaction())
	if err != nil {
		return h.respondError(c, err, "create transaction")
	}

	metrics.RecordTransaction()
	return c.JSON(tx)
}

// ListTransactions returns up to ?limit= transactions (default 200).
func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	limit, err := queryLimit(c, services.DefaultListLimit)
	if err != nil {
		return h.respondError(c, err, "list transactions")
	}

	docs, err := h.transactions.List(c.UserContext(), limit)
	if err != nil {
		return h.respondError(c, err, "list transactions")
	}
	return c.JSON(docs)
}
