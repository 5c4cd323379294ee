package dto

import (
	"roomdesk/internal/domains/receipt/model"
	"roomdesk/shared"
	"roomdesk/shared/constant"
	"roomdesk/shared/timezone"
)

type ReceiptResponse struct {
	ID               string  `json:"id"`
	SessionID        string  `json:"session_id"`
	RoomID           string  `json:"room_id"`
	CheckInDate      string  `json:"check_in_date"`
	CheckOutDate     string  `json:"check_out_date"`
	NumAdults        int     `json:"num_adults"`
	NumChildren      int     `json:"num_children"`
	TotalPrice       float64 `json:"total_price"`
	ConfirmationCode string  `json:"confirmation_code"`
	CreatedAt        string  `json:"created_at"`
}

func (r *ReceiptResponse) FromModel(model model.Receipt) {
	r.ID = model.ID
	r.SessionID = model.SessionID
	r.RoomID = model.RoomID
	r.CheckInDate = model.CheckInDate.Format(constant.CalendarFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.CalendarFormat)
	r.NumAdults = model.NumAdults
	r.NumChildren = model.NumChildren
	r.TotalPrice = model.TotalPrice
	r.ConfirmationCode = model.ConfirmationCode
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetReceiptsResponse struct {
	Receipts  []ReceiptResponse `json:"receipts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetReceiptsResponse) FromModels(models []model.Receipt, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Receipts = make([]ReceiptResponse, len(models))
	for i, mod := range models {
		r.Receipts[i].FromModel(mod)
	}
}
