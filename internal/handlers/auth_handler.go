package handlers

import (
	"errors"

	"github.com/arzan03/bssm-backend/internal/metrics"
	"github.com/arzan03/bssm-backend/internal/models"
	"github.com/arzan03/bssm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Login checks a NIK/password pair against the active accounts.
func (h *Handler) Login(c *fiber.Ctx) error {
	var request models.LoginRequest
	if err := parseBody(c, &request); err != nil {
		return h.respondError(c, err, "login")
	}

	resp, err := h.auth.Login(c.UserContext(), *request.Nik, *request.Password)
	if errors.Is(err, services.ErrUnauthorized) {
		metrics.RecordLogin(metrics.LoginUnauthorized)
		return detail(c, fiber.StatusUnauthorized, msgBadCredentials)
	}
	if err != nil {
		metrics.RecordLogin(metrics.LoginError)
		h.log.WithError(err).Error("Login lookup failed")
		return detail(c, fiber.StatusInternalServerError, msgDatabaseError)
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	return c.JSON(resp)
}
