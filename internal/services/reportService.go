package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/arzan03/bssm-backend/internal/db"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrReportsDisabled is returned when no object storage is configured.
var ErrReportsDisabled = errors.New("report storage not configured")

var reportColumns = []string{"_id", "date", "customer", "material", "weight", "price", "total"}

// ObjectStore receives exported report files.
type ObjectStore interface {
	Upload(ctx context.Context, object string, r io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, object string, expiry time.Duration) (string, error)
}

type Report struct {
	Object    string `json:"object"`
	URL       string `json:"url"`
	Count     int    `json:"count"`
	ExpiresIn string `json:"expires_in"`
}

type ReportService struct {
	store   db.Store
	objects ObjectStore
	expiry  time.Duration
	now     func() time.Time
}

// NewReportService returns a service that always fails with
// ErrReportsDisabled when objects is nil.
func NewReportService(store db.Store, objects ObjectStore, expiry time.Duration) *ReportService {
	return &ReportService{store: store, objects: objects, expiry: expiry, now: time.Now}
}

// ExportTransactions writes up to limit transactions (all when limit is 0)
// as CSV to object storage and returns a presigned link to the file.
func (s *ReportService) ExportTransactions(ctx context.Context, limit int64) (Report, error) {
	if s.objects == nil {
		return Report{}, ErrReportsDisabled
	}

	docs, err := s.store.GetDocuments(ctx, db.TransactionCollection, bson.M{}, limit)
	if err != nil {
		return Report{}, fmt.Errorf("read transactions: %w", err)
	}

	data, err := renderCSV(docs)
	if err != nil {
		return Report{}, fmt.Errorf("render report: %w", err)
	}

	object := fmt.Sprintf("transactions-%s-%s.csv", s.now().UTC().Format("20060102T150405Z"), uuid.NewString())
	if err := s.objects.Upload(ctx, object, bytes.NewReader(data), int64(len(data)), "text/csv"); err != nil {
		return Report{}, err
	}

	url, err := s.objects.PresignedURL(ctx, object, s.expiry)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Object:    object,
		URL:       url,
		Count:     len(docs),
		ExpiresIn: s.expiry.String(),
	}, nil
}

func renderCSV(docs []bson.M) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reportColumns); err != nil {
		return nil, err
	}
	row := make([]string, len(reportColumns))
	for _, d := range docs {
		for i, col := range reportColumns {
			row[i] = formatValue(d[col])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
