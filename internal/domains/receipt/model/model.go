package model

import "time"

const (
	TableName  = "booking_receipts"
	EntityName = "receipt"

	FieldID               = "id"
	FieldUserID           = "user_id"
	FieldConfirmationCode = "confirmation_code"
	FieldCreatedAt        = "created_at"
)

type Receipt struct {
	ID               string    `db:"id"`
	SessionID        string    `db:"session_id"`
	RoomID           string    `db:"room_id"`
	UserID           string    `db:"user_id"`
	CheckInDate      time.Time `db:"check_in_date"`
	CheckOutDate     time.Time `db:"check_out_date"`
	NumAdults        int       `db:"num_adults"`
	NumChildren      int       `db:"num_children"`
	TotalPrice       float64   `db:"total_price"`
	ConfirmationCode string    `db:"confirmation_code"`
	CreatedAt        time.Time `db:"created_at"`
}
