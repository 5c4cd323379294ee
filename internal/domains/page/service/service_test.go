package service_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"roomdesk/config"
	"roomdesk/infras/backend"
	backendMocks "roomdesk/infras/backend/mocks"
	otelMocks "roomdesk/infras/otel/mocks"
	"roomdesk/internal/domains/page/event"
	eventMocks "roomdesk/internal/domains/page/event/mocks"
	"roomdesk/internal/domains/page/model"
	"roomdesk/internal/domains/page/model/dto"
	"roomdesk/internal/domains/page/repository"
	"roomdesk/internal/domains/page/service"
	receiptMocks "roomdesk/internal/domains/receipt/mocks"
	receiptModel "roomdesk/internal/domains/receipt/model"
	"roomdesk/shared/constant"
	"roomdesk/shared/failure"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	owner   = "owner-1"
	token   = "jwt-token"
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

type fixture struct {
	svc       service.Page
	repo      repository.Page
	backend   *backendMocks.MockClient
	publisher *eventMocks.MockPublisher
	receipts  *receiptMocks.MockReceiptService
	clock     *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Page.ValidationNoticeSeconds = 5
	cfg.Page.SubmissionNoticeSeconds = 5
	cfg.Page.ConfirmationNoticeSeconds = 10
	cfg.Page.SessionTTLSeconds = 60
	cfg.Page.SweepIntervalSeconds = 10
	cfg.Page.ListingPath = "/rooms"

	f := &fixture{
		repo:      repository.New(),
		backend:   backendMocks.NewMockClient(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		receipts:  receiptMocks.NewMockReceiptService(ctrl),
		clock:     clockwork.NewFakeClock(),
	}

	f.svc = service.New(f.repo, f.backend, f.publisher, f.receipts, cfg, otelMocks.NewOtel(), f.clock)

	return f
}

func userContext(user string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, user)

	return context.WithValue(ctx, constant.ContextKeyToken, token)
}

func ptr[T any](v T) *T {
	return &v
}

func suite() backend.Room {
	return backend.Room{
		ID:          backend.NumberID("42"),
		RoomType:    "Suite",
		RoomPrice:   300,
		Description: "Sea view",
		Bookings:    []backend.Booking{{ID: backend.NumberID("7"), CheckInDate: "2024-01-01", CheckOutDate: "2024-01-03"}},
	}
}

func (f *fixture) open(t *testing.T) dto.PageResponse {
	t.Helper()

	return f.openAs(t, backend.User{ID: backend.NumberID("9")})
}

func (f *fixture) openAs(t *testing.T, user backend.User) dto.PageResponse {
	t.Helper()

	f.backend.EXPECT().GetRoom(gomock.Any(), token, "42").Return(suite(), nil)
	f.backend.EXPECT().GetProfile(gomock.Any(), token).Return(user, nil)

	res, err := f.svc.Open(userContext(owner), dto.OpenPageRequest{RoomID: "42"})
	require.NoError(t, err)

	return res
}

func (f *fixture) quote(t *testing.T, id string) {
	t.Helper()

	ctx := userContext(owner)

	_, err := f.svc.ShowPicker(ctx, id)
	require.NoError(t, err)

	_, err = f.svc.UpdateDraft(ctx, id, dto.UpdateDraftRequest{
		CheckInDate:           ptr("2024-02-29T15:00:00Z"),
		CheckOutDate:          ptr("2024-03-02T15:00:00Z"),
		NumAdults:             ptr(2),
		NumChildren:           ptr(1),
		TimezoneOffsetMinutes: ptr(-540),
	})
	require.NoError(t, err)

	res, err := f.svc.Quote(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, res.Quote)
}

func TestPageService_Open(t *testing.T) {
	f := newFixture(t)

	res := f.open(t)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, string(model.StateReady), res.State)
	assert.Equal(t, "9", res.UserID)
	require.NotNil(t, res.Room)
	assert.Equal(t, "Suite", res.Room.RoomType)
	require.Len(t, res.Room.Bookings, 1)
	assert.Equal(t, "2024-01-03", res.Room.Bookings[0].CheckOutDate)
	assert.Equal(t, 1, res.Draft.NumAdults)
	assert.Equal(t, 0, res.Draft.NumChildren)
	assert.Equal(t, 1, f.repo.Count())
}

func TestPageService_OpenFailure(t *testing.T) {
	tests := []struct {
		name        string
		roomErr     error
		profileErr  error
		wantMessage string
	}{
		{
			name:        "backend message wins",
			roomErr:     &backend.Error{Status: http.StatusNotFound, Message: "Room Not Found"},
			wantMessage: "Room Not Found",
		},
		{
			name:        "absent room",
			roomErr:     backend.ErrRoomNotFound,
			wantMessage: "Room not found.",
		},
		{
			name:        "profile failure",
			profileErr:  &backend.Error{Status: http.StatusUnauthorized, Message: "Unauthorized"},
			wantMessage: "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.backend.EXPECT().GetRoom(gomock.Any(), token, "42").Return(backend.Room{}, tt.roomErr)
			f.backend.EXPECT().GetProfile(gomock.Any(), token).
				DoAndReturn(func(ctx context.Context, _ string) (backend.User, error) {
					if tt.profileErr != nil {
						return backend.User{}, tt.profileErr
					}

					<-ctx.Done()

					return backend.User{}, ctx.Err()
				}).AnyTimes()

			_, err := f.svc.Open(userContext(owner), dto.OpenPageRequest{RoomID: "42"})

			require.Error(t, err)
			assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
			assert.Equal(t, tt.wantMessage, err.Error())
			assert.Zero(t, f.repo.Count())
		})
	}
}

func TestPageService_Ownership(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)

	_, err := f.svc.View(userContext("intruder"), page.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.svc.View(userContext(owner), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	res, err := f.svc.View(userContext(owner), page.ID)
	require.NoError(t, err)
	assert.Equal(t, page.ID, res.ID)
}

func TestPageService_QuoteValidation(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)
	ctx := userContext(owner)

	_, err := f.svc.ShowPicker(ctx, page.ID)
	require.NoError(t, err)

	_, err = f.svc.Quote(ctx, page.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, model.MessageMissingDateRange, err.Error())

	view, err := f.svc.View(ctx, page.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Notice)
	assert.Equal(t, model.MessageMissingDateRange, view.Notice.Text)
	assert.Nil(t, view.Quote)

	f.clock.Advance(5 * time.Second)

	assert.Eventually(t, func() bool {
		view, err := f.svc.View(ctx, page.ID)

		return err == nil && view.Notice == nil
	}, waitFor, tick)
}

func TestPageService_UpdateDraftInvalidDate(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)

	_, err := f.svc.UpdateDraft(userContext(owner), page.ID, dto.UpdateDraftRequest{CheckInDate: ptr("2024-02-31")})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestPageService_AcceptConfirmed(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)
	f.quote(t, page.ID)

	published := make(chan event.BookingOutcome, 1)
	recorded := make(chan receiptModel.Receipt, 1)

	f.backend.EXPECT().
		BookRoom(gomock.Any(), token, "42", backend.BookingRequest{
			UserID:        backend.NumberID("9"),
			CheckInDate:   "2024-03-01",
			CheckOutDate:  "2024-03-03",
			NumOfAdults:   2,
			NumOfChildren: 1,
		}).
		Return(backend.BookingResult{StatusCode: http.StatusOK, BookingConfirmationCode: "ABC123"}, nil)
	f.publisher.EXPECT().PublishBookingOutcome(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, outcome event.BookingOutcome) error {
			published <- outcome

			return nil
		})
	f.receipts.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, receipt receiptModel.Receipt) error {
			recorded <- receipt

			return nil
		})

	res, err := f.svc.Accept(userContext(owner), page.ID)

	require.NoError(t, err)
	assert.Equal(t, string(model.StateBookingConfirmed), res.State)
	assert.Equal(t, "ABC123", res.ConfirmationCode)
	require.NotNil(t, res.Notice)
	assert.Equal(t, model.ConfirmationMessage("ABC123"), res.Notice.Text)

	outcome := <-published
	assert.Equal(t, event.TypeBookingConfirmed, outcome.Type)
	assert.Equal(t, "ABC123", outcome.ConfirmationCode)

	receipt := <-recorded
	assert.Equal(t, "9", receipt.UserID)
	assert.InDelta(t, 900.0, receipt.TotalPrice, 0.001)

	f.clock.Advance(10 * time.Second)

	assert.Eventually(t, func() bool {
		view, err := f.svc.View(userContext(owner), page.ID)

		return err == nil && view.State == string(model.StateDeparted) && view.Redirect == "/rooms"
	}, waitFor, tick)
}

func TestPageService_AcceptKeepsProfileIDKind(t *testing.T) {
	f := newFixture(t)
	page := f.openAs(t, backend.User{ID: backend.StringID("007")})
	f.quote(t, page.ID)

	f.backend.EXPECT().
		BookRoom(gomock.Any(), token, "42", backend.BookingRequest{
			UserID:        backend.StringID("007"),
			CheckInDate:   "2024-03-01",
			CheckOutDate:  "2024-03-03",
			NumOfAdults:   2,
			NumOfChildren: 1,
		}).
		Return(backend.BookingResult{StatusCode: http.StatusOK, BookingConfirmationCode: "ABC123"}, nil)
	f.publisher.EXPECT().PublishBookingOutcome(gomock.Any(), gomock.Any()).Return(nil)
	f.receipts.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Accept(userContext(owner), page.ID)

	require.NoError(t, err)
	assert.Equal(t, string(model.StateBookingConfirmed), res.State)
	assert.Equal(t, "007", res.UserID)

	f.svc.Shutdown()
}

func TestPageService_AcceptRejected(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)
	f.quote(t, page.ID)

	published := make(chan event.BookingOutcome, 1)

	f.backend.EXPECT().BookRoom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(backend.BookingResult{}, &backend.Error{Status: http.StatusBadRequest, Message: "Room not available"})
	f.publisher.EXPECT().PublishBookingOutcome(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, outcome event.BookingOutcome) error {
			published <- outcome

			return nil
		})

	res, err := f.svc.Accept(userContext(owner), page.ID)

	require.NoError(t, err)
	assert.Equal(t, string(model.StateBookingFailed), res.State)
	require.NotNil(t, res.Notice)
	assert.Equal(t, "Room not available", res.Notice.Text)
	assert.Equal(t, "2024-03-01", res.Draft.CheckInDate)
	assert.Equal(t, "2024-03-03", res.Draft.CheckOutDate)
	assert.Equal(t, 2, res.Draft.NumAdults)
	require.NotNil(t, res.Quote)

	outcome := <-published
	assert.Equal(t, event.TypeBookingFailed, outcome.Type)
	assert.Equal(t, "Room not available", outcome.Error)
}

func TestPageService_AcceptWithoutCode(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)
	f.quote(t, page.ID)

	done := make(chan struct{})

	f.backend.EXPECT().BookRoom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(backend.BookingResult{StatusCode: http.StatusAccepted}, nil)
	f.publisher.EXPECT().PublishBookingOutcome(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, event.BookingOutcome) error {
			close(done)

			return nil
		})

	res, err := f.svc.Accept(userContext(owner), page.ID)

	require.NoError(t, err)
	assert.Equal(t, string(model.StateBookingFailed), res.State)
	assert.Equal(t, model.MessageBookingFailed, res.Notice.Text)
	<-done
}

func TestPageService_AcceptInFlight(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)
	f.quote(t, page.ID)

	var calls atomic.Int32

	entered := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan error, 1)
	published := make(chan struct{})

	f.backend.EXPECT().BookRoom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, backend.BookingRequest) (backend.BookingResult, error) {
			calls.Add(1)
			close(entered)
			<-release

			return backend.BookingResult{StatusCode: http.StatusOK, BookingConfirmationCode: "ABC123"}, nil
		}).Times(1)
	f.publisher.EXPECT().PublishBookingOutcome(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, event.BookingOutcome) error {
			close(published)

			return nil
		})
	f.receipts.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	go func() {
		_, err := f.svc.Accept(userContext(owner), page.ID)
		finished <- err
	}()

	<-entered

	_, err := f.svc.Accept(userContext(owner), page.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = f.svc.UpdateDraft(userContext(owner), page.ID, dto.UpdateDraftRequest{NumAdults: ptr(1)})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	close(release)
	require.NoError(t, <-finished)
	<-published

	assert.Equal(t, int32(1), calls.Load())
}

func TestPageService_CloseAbortsSubmission(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)
	f.quote(t, page.ID)

	entered := make(chan struct{})
	finished := make(chan error, 1)

	f.backend.EXPECT().BookRoom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, _ backend.BookingRequest) (backend.BookingResult, error) {
			close(entered)
			<-ctx.Done()

			return backend.BookingResult{}, ctx.Err()
		})

	go func() {
		_, err := f.svc.Accept(userContext(owner), page.ID)
		finished <- err
	}()

	<-entered
	require.NoError(t, f.svc.Close(userContext(owner), page.ID))

	err := <-finished
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Zero(t, f.repo.Count())

	_, err = f.svc.View(userContext(owner), page.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestPageService_AcceptWithoutQuote(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)

	_, err := f.svc.Accept(userContext(owner), page.ID)

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestPageService_HidePicker(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)
	f.quote(t, page.ID)

	res, err := f.svc.HidePicker(userContext(owner), page.ID)

	require.NoError(t, err)
	assert.Equal(t, string(model.StateReady), res.State)
	assert.False(t, res.PickerVisible)
	assert.Nil(t, res.Quote)
	assert.Equal(t, "2024-03-01", res.Draft.CheckInDate)
}

func TestPageService_RunSweeper(t *testing.T) {
	f := newFixture(t)
	f.open(t)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	go func() {
		f.svc.RunSweeper(ctx)
		close(stopped)
	}()

	f.clock.BlockUntil(1)
	f.clock.Advance(70 * time.Second)

	assert.Eventually(t, func() bool { return f.repo.Count() == 0 }, waitFor, tick)

	cancel()
	<-stopped
}

func TestPageService_Shutdown(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)

	f.svc.Shutdown()

	assert.Zero(t, f.repo.Count())

	_, err := f.svc.View(userContext(owner), page.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestPageService_ShutdownWaitsForPendingOutcomes(t *testing.T) {
	f := newFixture(t)
	page := f.open(t)
	f.quote(t, page.ID)

	release := make(chan struct{})
	published := make(chan struct{})

	f.backend.EXPECT().BookRoom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(backend.BookingResult{StatusCode: http.StatusOK, BookingConfirmationCode: "ABC123"}, nil)
	f.publisher.EXPECT().PublishBookingOutcome(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ event.BookingOutcome) error {
			<-release
			close(published)

			return nil
		})
	f.receipts.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.Accept(userContext(owner), page.ID)
	require.NoError(t, err)

	done := make(chan struct{})

	go func() {
		f.svc.Shutdown()
		close(done)
	}()

	finished := func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}

	assert.Never(t, finished, 50*time.Millisecond, tick)

	close(release)

	assert.Eventually(t, finished, waitFor, tick)

	select {
	case <-published:
	default:
		t.Fatal("shutdown returned before the outcome was published")
	}
}
