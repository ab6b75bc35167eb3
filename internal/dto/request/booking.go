package request

type CreateBookingRequest struct {
	EventID  string `json:"event_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
