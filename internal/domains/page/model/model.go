package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"roomdesk/shared/constant"
)

const EntityName = "page"

type State string

const (
	StateLoading          State = "loading"
	StateReady            State = "ready"
	StateDatePicking      State = "date_picking"
	StateQuotePresented   State = "quote_presented"
	StateSubmitting       State = "submitting"
	StateBookingConfirmed State = "booking_confirmed"
	StateBookingFailed    State = "booking_failed"
	StateDeparted         State = "departed"
	StateError            State = "error"
	StateClosed           State = "closed"
)

// Terminal reports whether no user action can leave the state.
func (s State) Terminal() bool {
	switch s {
	case StateBookingConfirmed, StateDeparted, StateError, StateClosed:
		return true
	default:
		return false
	}
}

const (
	MessageMissingDateRange  = "Please select check-in and check-out dates."
	MessageInvalidGuestCount = "Please enter valid numbers for adults and children."
	MessageBookingFailed     = "Booking could not be completed. Please try again."
	MessageRoomNotFound      = "Room not found."
	messageBookingConfirmed  = "Booking successful! Confirmation code: %s. " +
		"An SMS and email of your booking details have been sent to you."
)

var (
	ErrMissingDateRange     = errors.New(MessageMissingDateRange)
	ErrInvalidGuestCount    = errors.New(MessageInvalidGuestCount)
	ErrSubmissionInProgress = errors.New("a booking submission is already in progress")
	ErrNoQuote              = errors.New("no price quote to accept")
	ErrUserUnknown          = errors.New("user identity is not loaded")
	ErrInvalidTransition    = errors.New("action not allowed in the current page state")
	ErrInvalidDate          = errors.New("invalid date")
	ErrSessionNotFound      = errors.New("page session not found")
)

// ConfirmationMessage is the success notice shown after a confirmed booking.
func ConfirmationMessage(code string) string {
	return fmt.Sprintf(messageBookingConfirmed, code)
}

// Date is a calendar day, held as midnight UTC.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts a calendar day or an RFC 3339 timestamp. A timestamp is shifted by
// offsetMinutes (UTC minus local, as reported by a browser) before it is truncated to a day;
// without an offset the timestamp's own zone decides the day.
func ParseDate(value string, offsetMinutes *int) (Date, error) {
	value = strings.TrimSpace(value)

	if len(value) == len(constant.CalendarFormat) {
		t, err := time.Parse(constant.CalendarFormat, value)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %s", ErrInvalidDate, value)
		}

		return NewDate(t.Date()), nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %s", ErrInvalidDate, value)
	}

	if offsetMinutes != nil {
		t = t.UTC().Add(-time.Duration(*offsetMinutes) * time.Minute)
	}

	return NewDate(t.Date()), nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) String() string {
	if d.t.IsZero() {
		return constant.Empty
	}

	return d.t.Format(constant.CalendarFormat)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// DaysUntil is the signed number of whole days from d to other.
func (d Date) DaysUntil(other Date) float64 {
	return other.t.Sub(d.t).Hours() / 24 //nolint:mnd
}

type ExistingBooking struct {
	ID           string `json:"id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

type RoomDetails struct {
	ID          string            `json:"id"`
	RoomType    string            `json:"room_type"`
	RoomPrice   float64           `json:"room_price"`
	Description string            `json:"description"`
	Bookings    []ExistingBooking `json:"bookings"`
}

type Draft struct {
	CheckInDate  *Date
	CheckOutDate *Date
	NumAdults    int
	NumChildren  int
}

func NewDraft() Draft {
	return Draft{NumAdults: 1}
}

// Validate checks the draft in the order the page reports problems.
func (d Draft) Validate() error {
	if d.CheckInDate == nil || d.CheckOutDate == nil {
		return ErrMissingDateRange
	}

	if d.NumAdults < 1 || d.NumChildren < 0 {
		return ErrInvalidGuestCount
	}

	return nil
}

type Quote struct {
	Nights      int     `json:"nights"`
	TotalPrice  float64 `json:"total_price"`
	TotalGuests int     `json:"total_guests"`
}

// CalculateQuote counts stay days inclusively: round(|checkOut - checkIn|) + 1.
func CalculateQuote(roomPrice float64, draft Draft) (Quote, error) {
	if err := draft.Validate(); err != nil {
		return Quote{}, err
	}

	nights := int(math.Round(math.Abs(draft.CheckInDate.DaysUntil(*draft.CheckOutDate)))) + 1

	return Quote{
		Nights:      nights,
		TotalPrice:  roomPrice * float64(nights),
		TotalGuests: draft.NumAdults + draft.NumChildren,
	}, nil
}

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

type Notice struct {
	Kind      NoticeKind
	Text      string
	ExpiresAt time.Time
}

// Guest is the signed-in user as the profile endpoint reports them. NumericID records
// that the backend sent the id as a JSON number; bookings must echo it back that way.
type Guest struct {
	ID        string
	NumericID bool
}

// Submission is what gets sent to the backend when a quote is accepted.
type Submission struct {
	RoomID        string
	UserID        string
	UserIDNumeric bool
	CheckInDate   Date
	CheckOutDate  Date
	NumOfAdults   int
	NumOfChildren int
	Quote         Quote
}

// View is a point-in-time copy of a page session.
type View struct {
	ID               string
	State            State
	Room             *RoomDetails
	UserID           string
	Draft            Draft
	Quote            *Quote
	Notice           *Notice
	ConfirmationCode string
	Redirect         string
	Submitting       bool
	PickerVisible    bool
}
