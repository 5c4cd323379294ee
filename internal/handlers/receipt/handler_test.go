package receipt_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "roomdesk/infras/otel/mocks"
	receiptMocks "roomdesk/internal/domains/receipt/mocks"
	"roomdesk/internal/domains/receipt/model/dto"
	"roomdesk/internal/handlers/receipt"
	"roomdesk/shared/constant"
	gDto "roomdesk/shared/dto"
	"roomdesk/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func serve(t *testing.T, svc *receiptMocks.MockReceiptService, path string) *httptest.ResponseRecorder {
	t.Helper()

	handler := receipt.New(svc, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, "9"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_GetReceipts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := receiptMocks.NewMockReceiptService(ctrl)

	svc.EXPECT().GetAll(gomock.Any(), "9", gDto.QueryParams{Page: 2, Limit: 100}).
		Return(dto.GetReceiptsResponse{TotalData: 1, TotalPage: 1}, nil)

	rec := serve(t, svc, "/receipts?page=2&limit=500")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"receipts":null,"total_page":1,"total_data":1}}`, rec.Body.String())
}

func TestHandler_GetReceipts_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := receiptMocks.NewMockReceiptService(ctrl)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dto.GetReceiptsResponse{}, errors.New("database unavailable"))

	rec := serve(t, svc, "/receipts")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_GetReceiptByCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := receiptMocks.NewMockReceiptService(ctrl)

	svc.EXPECT().Get(gomock.Any(), "9", "ABC123").
		Return(dto.ReceiptResponse{ConfirmationCode: "ABC123"}, nil)
	svc.EXPECT().Get(gomock.Any(), "9", "NOPE").
		Return(dto.ReceiptResponse{}, failure.NotFound("receipt not found"))

	rec := serve(t, svc, "/receipts/ABC123")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"confirmation_code":"ABC123"`)

	rec = serve(t, svc, "/receipts/NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
