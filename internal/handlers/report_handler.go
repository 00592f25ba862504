package handlers

import (
	"errors"

	"github.com/arzan03/bssm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ExportTransactions uploads a CSV of the transactions and returns a
// temporary download link.
func (h *Handler) ExportTransactions(c *fiber.Ctx) error {
	limit, err := queryLimit(c, 0)
	if err != nil {
		return h.respondError(c, err, "export transactions")
	}

	report, err := h.reports.ExportTransactions(c.UserContext(), limit)
	switch {
	case errors.Is(err, services.ErrReportsDisabled):
		return detail(c, fiber.StatusServiceUnavailable, msgReportsDisabled)
	case err != nil:
		h.log.WithError(err).Error("Report export failed")
		return detail(c, fiber.StatusInternalServerError, msgReportExportFail)
	}
	return c.JSON(report)
}
