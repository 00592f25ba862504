package models

// Transaction is one deposit in the "transaction" collection.
type Transaction struct {
	ID       string  `bson:"-" json:"_id"`
	Date     string  `bson:"date" json:"date"`
	Customer string  `bson:"customer" json:"customer"`
	Material string  `bson:"material" json:"material"`
	Weight   float64 `bson:"weight" json:"weight" validate:"gte=0"`
	Price    float64 `bson:"price" json:"price" validate:"gte=0"`
	Total    float64 `bson:"total" json:"total" validate:"gte=0"`
}

// TransactionInput is the request body for recording a deposit. Pointers
// tell a missing field apart from a zero value.
type TransactionInput struct {
	Date     *string  `json:"date" validate:"required"`
	Customer *string  `json:"customer" validate:"required"`
	Material *string  `json:"material" validate:"required"`
	Weight   *float64 `json:"weight" validate:"required,gte=0"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
}

// Transaction converts a validated input. Total is left for the caller.
func (in TransactionInput) Transaction() Transaction {
	return Transaction{
		Date:     *in.Date,
		Customer: *in.Customer,
		Material: *in.Material,
		Weight:   *in.Weight,
		Price:    *in.Price,
	}
}
