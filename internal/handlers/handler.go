package handlers

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"

	"github.com/arzan03/bssm-backend/internal/models"
	"github.com/arzan03/bssm-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	msgRootRunning      = "BSSM Backend Running"
	msgBadCredentials   = "NIK atau kata sandi salah"
	msgDatabaseError    = "Database connection error"
	msgReportsDisabled  = "Report storage not configured"
	msgReportExportFail = "Failed to export report"
)

type Handler struct {
	auth         *services.AuthService
	transactions *services.TransactionService
	status       *services.StatusService
	reports      *services.ReportService
	log          logrus.FieldLogger
}

func New(
	auth *services.AuthService,
	transactions *services.TransactionService,
	status *services.StatusService,
	reports *services.ReportService,
	log logrus.FieldLogger,
) *Handler {
	return &Handler{
		auth:         auth,
		transactions: transactions,
		status:       status,
		reports:      reports,
		log:          log,
	}
}

// Register mounts all API routes on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/", h.Root)
	r.Get("/test", h.TestDatabase)

	auth := r.Group("/auth")
	auth.Post("/login", h.Login)

	r.Post("/transactions", h.CreateTransaction)
	r.Get("/transactions", h.ListTransactions)

	r.Post("/reports/transactions", h.ExportTransactions)
}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// respondError renders validation errors with their field detail and
// anything else as a generic database error.
func (h *Handler) respondError(c *fiber.Ctx, err error, op string) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": verr.Errors})
	}
	h.log.WithError(err).WithField("op", op).Error("Request failed")
	return detail(c, fiber.StatusInternalServerError, msgDatabaseError)
}

// parseBody decodes a JSON body into out and checks its validate tags.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return models.NewValidationError(
				[]string{"body", typeErr.Field},
				"Input should be a valid "+jsonKind(typeErr.Type),
				"type_error",
			)
		}
		return models.NewValidationError([]string{"body"}, "Invalid JSON body", "json_invalid")
	}
	return models.Validate("body", out)
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	default:
		return t.String()
	}
}

// queryLimit reads the "limit" query parameter, returning def when absent.
func queryLimit(c *fiber.Ctx, def int64) (int64, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, models.NewValidationError(
			[]string{"query", "limit"},
			"Input should be a valid integer, unable to parse string as an integer",
			"int_parsing",
		)
	}
	if err := models.Validate("query", models.ListQuery{Limit: n}); err != nil {
		return 0, err
	}
	return n, nil
}
