package page

import (
	"context"
	"net/http"

	"roomdesk/infras/otel"
	"roomdesk/internal/domains/page/model/dto"
	"roomdesk/internal/domains/page/service"
	"roomdesk/shared/constant"
	"roomdesk/shared/validator"
	"roomdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Page
	otel    otel.Otel
}

func New(service service.Page, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.OpenPage)
		routerGroup.Get("/{id}", handler.GetPage)
		routerGroup.Delete("/{id}", handler.ClosePage)
		routerGroup.Post("/{id}/picker", handler.ShowPicker)
		routerGroup.Delete("/{id}/picker", handler.HidePicker)
		routerGroup.Patch("/{id}/draft", handler.UpdateDraft)
		routerGroup.Post("/{id}/quote", handler.Quote)
		routerGroup.Post("/{id}/booking", handler.AcceptBooking)
	})
}

// OpenPage opens a booking page for a room.
// @Summary Open a room booking page
// @Description Load the room and the caller's profile and start a page session.
// @Tags Page
// @Accept json
// @Produce json
// @Param request body dto.OpenPageRequest true "Room to open"
// @Success 201 {object} response.Data[dto.PageResponse] "Page opened"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 502 {object} response.Error "Room or profile could not be loaded"
// @Router /v1/pages [post]
// @Security BearerAuth
func (handler *Handler) OpenPage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OpenPage")
	defer scope.End()

	var req dto.OpenPageRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	page, err := handler.service.Open(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", req.RoomID).Msg("failed to open page")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Page opened for room " + req.RoomID)

	response.WithJSON(w, http.StatusCreated, page)
}

// GetPage returns the current state of a page.
// @Summary Get a booking page
// @Tags Page
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "GetPage", handler.service.View)
}

// ShowPicker opens the date picker ("Book Now").
// @Summary Show the date picker
// @Tags Page
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/pages/{id}/picker [post]
// @Security BearerAuth
func (handler *Handler) ShowPicker(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "ShowPicker", handler.service.ShowPicker)
}

// HidePicker closes the date picker ("Go Back").
// @Summary Hide the date picker
// @Tags Page
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/pages/{id}/picker [delete]
// @Security BearerAuth
func (handler *Handler) HidePicker(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "HidePicker", handler.service.HidePicker)
}

// UpdateDraft changes the dates or guest counts of the booking draft.
// @Summary Update the booking draft
// @Description Dates are YYYY-MM-DD or RFC 3339. Timestamps are shifted by timezone_offset_minutes before truncation.
// @Tags Page
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param request body dto.UpdateDraftRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/pages/{id}/draft [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDraft")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateDraftRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	page, err := handler.service.UpdateDraft(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("page", id).Msg("failed to update draft")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, page)
}

// Quote prices the current draft.
// @Summary Quote the booking draft
// @Description Fails with 400 and posts a five second notice when dates are missing or guest counts are invalid.
// @Tags Page
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/pages/{id}/quote [post]
// @Security BearerAuth
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "Quote", handler.service.Quote)
}

// AcceptBooking submits the quoted booking.
// @Summary Accept the quote and book
// @Description The outcome is carried by the page state: booking_confirmed or booking_failed.
// @Tags Page
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "No quote, or a submission is already in flight"
// @Router /v1/pages/{id}/booking [post]
// @Security BearerAuth
func (handler *Handler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, r, "AcceptBooking", handler.service.Accept)
}

// ClosePage disposes of a page and aborts anything it still has in flight.
// @Summary Close a booking page
// @Tags Page
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Message "Page closed successfully"
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) ClosePage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClosePage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Close(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("page", id).Msg("failed to close page")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Page closed " + id)

	response.WithMessage(w, http.StatusOK, "Page closed successfully")
}

type pageAction func(ctx context.Context, id string) (dto.PageResponse, error)

func (handler *Handler) respond(w http.ResponseWriter, r *http.Request, name string, action pageAction) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	page, err := action(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("page", id).Str("action", name).Msg("page action failed")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, page)
}
