package models

// Requests posted by visitors of a public event page.

type CondolenceRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	Message string `json:"message" validate:"required,max=1000"`
}

type RSVPRequest struct {
	Name       string `json:"name" validate:"required,max=50"`
	Attending  bool   `json:"attending"`
	Companions int    `json:"companions" validate:"min=0,max=20"`
	Message    string `json:"message" validate:"max=500"`
}

type GuestbookRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	Message string `json:"message" validate:"required,max=1000"`
}
