package receipt

import (
	"net/http"

	"roomdesk/infras/otel"
	"roomdesk/internal/domains/receipt/service"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	"roomdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Receipt
	otel    otel.Otel
}

func New(service service.Receipt, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/receipts", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetReceipts)
		routerGroup.Get("/{code}", handler.GetReceiptByCode)
	})
}

// GetReceipts lists the caller's confirmed bookings.
// @Summary Get my booking receipts
// @Description Receipts of bookings confirmed through this service, newest first.
// @Tags Receipt
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReceiptsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/receipts [get]
// @Security BearerAuth
func (handler *Handler) GetReceipts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReceipts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	receipts, err := handler.service.GetAll(ctx, user, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get receipts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, receipts)
}

// GetReceiptByCode returns one receipt by its confirmation code.
// @Summary Get a booking receipt
// @Tags Receipt
// @Produce json
// @Param code path string true "Booking confirmation code"
// @Success 200 {object} response.Data[dto.ReceiptResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/receipts/{code} [get]
// @Security BearerAuth
func (handler *Handler) GetReceiptByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReceiptByCode")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	receipt, err := handler.service.Get(ctx, user, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("code", code).Msg("failed to get receipt")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, receipt)
}
