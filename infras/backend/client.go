package backend

//go:generate go run go.uber.org/mock/mockgen -source=./client.go -destination=./mocks/client_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"roomdesk/config"
	"roomdesk/infras/otel"
	"roomdesk/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	pathRoom     = "/rooms/%s"
	pathProfile  = "/users/profile"
	pathBookings = "/rooms/%s/bookings"

	maxErrorBody = 64 << 10
)

var ErrRoomNotFound = errors.New("Room not found.") //nolint:revive,stylecheck

var ErrInvalidID = errors.New("id is not a JSON number")

// Error is a non-2xx answer from the hotel backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("backend responded with status %d", e.Status)
}

// Message returns the backend-supplied message when err carries one, else the error text.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var backendErr *Error
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}

	return err.Error()
}

// ID accepts both JSON numbers and strings and marshals back to the same kind.
type ID struct {
	value   string
	numeric bool
}

// StringID is an id the backend sends as a JSON string.
func StringID(value string) ID {
	return ID{value: value}
}

// NumberID is an id the backend sends as a JSON number. value must be a valid JSON number.
func NumberID(value string) ID {
	return ID{value: value, numeric: true}
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ID{}

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode id: %w", err)
		}

		*id = StringID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode id: %w", err)
	}

	*id = NumberID(n.String())

	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		if !isJSONNumber(id.value) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, id.value)
		}

		return []byte(id.value), nil
	}

	return json.Marshal(id.value) //nolint:wrapcheck
}

func (id ID) String() string {
	return id.value
}

func isJSONNumber(value string) bool {
	if value == "" || (value[0] != '-' && (value[0] < '0' || value[0] > '9')) {
		return false
	}

	return json.Valid([]byte(value))
}

func (id ID) Numeric() bool {
	return id.numeric
}

func (id ID) IsZero() bool {
	return id.value == ""
}

type Booking struct {
	ID           ID     `json:"id"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

type Room struct {
	ID          ID        `json:"id"`
	RoomType    string    `json:"roomType"`
	RoomPrice   float64   `json:"roomPrice"`
	Description string    `json:"description"`
	Bookings    []Booking `json:"bookings"`
}

type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingRequest struct {
	UserID        ID     `json:"userId"`
	CheckInDate   string `json:"checkInDate"`
	CheckOutDate  string `json:"checkOutDate"`
	NumOfAdults   int    `json:"numOfAdults"`
	NumOfChildren int    `json:"numOfChildren"`
}

type BookingResult struct {
	StatusCode              int    `json:"statusCode"`
	Message                 string `json:"message"`
	BookingConfirmationCode string `json:"bookingConfirmationCode"`
}

type roomEnvelope struct {
	Room *Room `json:"room"`
}

type userEnvelope struct {
	User *User `json:"user"`
}

type errorEnvelope struct {
	Message string `json:"message"`
}

type Client interface {
	GetRoom(ctx context.Context, token, roomID string) (Room, error)
	GetProfile(ctx context.Context, token string) (User, error)
	BookRoom(ctx context.Context, token, roomID string, req BookingRequest) (BookingResult, error)
}

type clientImpl struct {
	baseURL string
	http    *http.Client
	otel    otel.Otel
}

func New(config *config.Config, otel otel.Otel) Client {
	return NewWithHTTPClient(config.Backend.BaseURL, &http.Client{
		Timeout: time.Duration(config.Backend.TimeoutSeconds) * time.Second,
	}, otel)
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client, otel otel.Otel) Client {
	return &clientImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		otel:    otel,
	}
}

func (c *clientImpl) GetRoom(ctx context.Context, token, roomID string) (res Room, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".GetRoom")
	defer scope.End()

	scope.SetAttribute("room.id", roomID)

	var envelope roomEnvelope
	if err = c.do(ctx, http.MethodGet, fmt.Sprintf(pathRoom, url.PathEscape(roomID)), token, nil, &envelope); err != nil {
		scope.TraceError(err)

		return res, err
	}

	if envelope.Room == nil {
		scope.TraceError(ErrRoomNotFound)

		return res, ErrRoomNotFound
	}

	return *envelope.Room, nil
}

func (c *clientImpl) GetProfile(ctx context.Context, token string) (res User, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".GetProfile")
	defer scope.End()

	var envelope userEnvelope
	if err = c.do(ctx, http.MethodGet, pathProfile, token, nil, &envelope); err != nil {
		scope.TraceError(err)

		return res, err
	}

	if envelope.User == nil || envelope.User.ID.IsZero() {
		err = &Error{Status: http.StatusOK, Message: "User profile is unavailable."}
		scope.TraceError(err)

		return res, err
	}

	return *envelope.User, nil
}

func (c *clientImpl) BookRoom(ctx context.Context, token, roomID string, req BookingRequest) (res BookingResult, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".BookRoom")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"room.id":       roomID,
		"check_in":      req.CheckInDate,
		"check_out":     req.CheckOutDate,
		"guests.adults": req.NumOfAdults,
	})

	if err = c.do(ctx, http.MethodPost, fmt.Sprintf(pathBookings, url.PathEscape(roomID)), token, req, &res); err != nil {
		scope.TraceError(err)

		return res, err
	}

	return res, nil
}

func (c *clientImpl) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, constant.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("failed to reach backend")

		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var envelope errorEnvelope

		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(raw, &envelope)

		log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).
			Str("message", envelope.Message).Msg("backend rejected request")

		return &Error{Status: resp.StatusCode, Message: envelope.Message}
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}

	return nil
}
