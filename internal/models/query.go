package models

// ListQuery holds the query parameters of a listing request.
type ListQuery struct {
	Limit int64 `query:"limit" validate:"gte=1"`
}
