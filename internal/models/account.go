package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Account roles
const (
	RoleResident = "warga"
	RoleStaff    = "pengurus"
	RoleAdmin    = "admin"
)

// Account is a login identity stored in the "account" collection.
// Passwords are kept in plain text; these are demo accounts only.
type Account struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Nik      string             `bson:"nik" json:"nik" validate:"required"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Role     string             `bson:"role" json:"role" validate:"oneof=warga pengurus admin"`
	Password string             `bson:"password" json:"-" validate:"required"`
	Active   bool               `bson:"active" json:"active"`
}

// NewAccount fills in the defaults: resident role, active.
func NewAccount(nik, name, password string) Account {
	return Account{
		Nik:      nik,
		Name:     name,
		Role:     RoleResident,
		Password: password,
		Active:   true,
	}
}
