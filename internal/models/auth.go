package models

type LoginRequest struct {
	Nik      *string `json:"nik" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Nik   string `json:"nik"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}
