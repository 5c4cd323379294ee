package dto

import (
	"time"

	"roomdesk/internal/domains/page/model"
	"roomdesk/internal/domains/page/session"
)

type OpenPageRequest struct {
	RoomID string `json:"room_id" validate:"required,max=64"`
}

// UpdateDraftRequest carries only the fields that change. Guest counts are range-checked
// when a quote is requested, so a draft may hold values the quote will reject.
type UpdateDraftRequest struct {
	CheckInDate           *string `json:"check_in_date"           validate:"omitempty,calendar"`
	CheckOutDate          *string `json:"check_out_date"          validate:"omitempty,calendar"`
	NumAdults             *int    `json:"num_adults"              validate:"omitempty,lte=100"`
	NumChildren           *int    `json:"num_children"            validate:"omitempty,lte=100"`
	TimezoneOffsetMinutes *int    `json:"timezone_offset_minutes" validate:"omitempty,min=-840,max=840"`
}

func (r *UpdateDraftRequest) ToChange() (session.DraftChange, error) {
	change := session.DraftChange{
		NumAdults:   r.NumAdults,
		NumChildren: r.NumChildren,
	}

	if r.CheckInDate != nil {
		date, err := model.ParseDate(*r.CheckInDate, r.TimezoneOffsetMinutes)
		if err != nil {
			return change, err
		}

		change.CheckInDate = &date
	}

	if r.CheckOutDate != nil {
		date, err := model.ParseDate(*r.CheckOutDate, r.TimezoneOffsetMinutes)
		if err != nil {
			return change, err
		}

		change.CheckOutDate = &date
	}

	return change, nil
}

type DraftResponse struct {
	CheckInDate  string `json:"check_in_date,omitempty"`
	CheckOutDate string `json:"check_out_date,omitempty"`
	NumAdults    int    `json:"num_adults"`
	NumChildren  int    `json:"num_children"`
}

type NoticeResponse struct {
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	ExpiresAt string `json:"expires_at"`
}

type PageResponse struct {
	ID               string             `json:"id"`
	State            string             `json:"state"`
	Room             *model.RoomDetails `json:"room,omitempty"`
	UserID           string             `json:"user_id,omitempty"`
	PickerVisible    bool               `json:"picker_visible"`
	Draft            DraftResponse      `json:"draft"`
	Quote            *model.Quote       `json:"quote,omitempty"`
	Notice           *NoticeResponse    `json:"notice,omitempty"`
	Submitting       bool               `json:"submitting"`
	ConfirmationCode string             `json:"confirmation_code,omitempty"`
	Redirect         string             `json:"redirect,omitempty"`
}

func (r *PageResponse) FromView(view model.View) {
	r.ID = view.ID
	r.State = string(view.State)
	r.Room = view.Room
	r.UserID = view.UserID
	r.PickerVisible = view.PickerVisible
	r.Quote = view.Quote
	r.Submitting = view.Submitting
	r.ConfirmationCode = view.ConfirmationCode
	r.Redirect = view.Redirect

	r.Draft = DraftResponse{
		NumAdults:   view.Draft.NumAdults,
		NumChildren: view.Draft.NumChildren,
	}

	if view.Draft.CheckInDate != nil {
		r.Draft.CheckInDate = view.Draft.CheckInDate.String()
	}

	if view.Draft.CheckOutDate != nil {
		r.Draft.CheckOutDate = view.Draft.CheckOutDate.String()
	}

	if view.Notice != nil {
		r.Notice = &NoticeResponse{
			Kind:      string(view.Notice.Kind),
			Text:      view.Notice.Text,
			ExpiresAt: view.Notice.ExpiresAt.UTC().Format(time.RFC3339),
		}
	}
}
