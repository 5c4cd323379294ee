package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"roomdesk/config"
	"roomdesk/infras/backend"
	"roomdesk/infras/otel"
	"roomdesk/internal/domains/page/event"
	"roomdesk/internal/domains/page/model"
	"roomdesk/internal/domains/page/model/dto"
	"roomdesk/internal/domains/page/repository"
	"roomdesk/internal/domains/page/session"
	receiptModel "roomdesk/internal/domains/receipt/model"
	receiptService "roomdesk/internal/domains/receipt/service"
	"roomdesk/shared/constant"
	"roomdesk/shared/failure"
	"roomdesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Page interface {
	Open(ctx context.Context, req dto.OpenPageRequest) (dto.PageResponse, error)
	View(ctx context.Context, id string) (dto.PageResponse, error)
	ShowPicker(ctx context.Context, id string) (dto.PageResponse, error)
	HidePicker(ctx context.Context, id string) (dto.PageResponse, error)
	UpdateDraft(ctx context.Context, id string, req dto.UpdateDraftRequest) (dto.PageResponse, error)
	Quote(ctx context.Context, id string) (dto.PageResponse, error)
	Accept(ctx context.Context, id string) (dto.PageResponse, error)
	Close(ctx context.Context, id string) error
	RunSweeper(ctx context.Context)
	Shutdown()
}

type serviceImpl struct {
	repo      repository.Page
	backend   backend.Client
	publisher event.Publisher
	receipts  receiptService.Receipt
	cfg       *config.Config
	otel      otel.Otel
	clock     clockwork.Clock
	timings   session.Timings

	tasksMu sync.Mutex
	tasks   sync.WaitGroup
	stopped bool
}

func New(
	repo repository.Page,
	backend backend.Client,
	publisher event.Publisher,
	receipts receiptService.Receipt,
	cfg *config.Config,
	otel otel.Otel,
	clock clockwork.Clock,
) Page {
	return &serviceImpl{
		repo:      repo,
		backend:   backend,
		publisher: publisher,
		receipts:  receipts,
		cfg:       cfg,
		otel:      otel,
		clock:     clock,
		timings: session.Timings{
			ValidationNotice:   time.Duration(cfg.Page.ValidationNoticeSeconds) * time.Second,
			SubmissionNotice:   time.Duration(cfg.Page.SubmissionNoticeSeconds) * time.Second,
			ConfirmationNotice: time.Duration(cfg.Page.ConfirmationNoticeSeconds) * time.Second,
			ListingPath:        cfg.Page.ListingPath,
		},
	}
}

func (s *serviceImpl) Open(ctx context.Context, req dto.OpenPageRequest) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Open")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)
	token, _ := ctx.Value(constant.ContextKeyToken).(string)

	sess := session.New(uuid.NewString(), owner, req.RoomID, token, s.clock, s.timings)
	s.repo.Save(sess)

	scope.SetAttributes(map[string]any{"page.id": sess.ID, "room.id": req.RoomID})

	loadCtx, cancel := sess.Bind(ctx)
	defer cancel()

	if err = s.load(loadCtx, sess); err != nil {
		s.dispose(sess)

		return res, err
	}

	res.FromView(sess.View())

	return res, nil
}

// load fetches the room and the caller's profile side by side.
func (s *serviceImpl) load(ctx context.Context, sess *session.Session) error {
	var (
		room backend.Room
		user backend.User
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		room, err = s.backend.GetRoom(groupCtx, sess.Token(), sess.RoomID)

		return err //nolint:wrapcheck
	})

	group.Go(func() (err error) {
		user, err = s.backend.GetProfile(groupCtx, sess.Token())

		return err //nolint:wrapcheck
	})

	if err := group.Wait(); err != nil {
		message := backend.Message(err)
		if errors.Is(err, backend.ErrRoomNotFound) {
			message = model.MessageRoomNotFound
		}

		log.Error().Err(err).Str("page", sess.ID).Str("room", sess.RoomID).Msg("failed to load page")
		sess.FailLoad()

		if ctx.Err() != nil {
			return fmt.Errorf("page load aborted: %w", ctx.Err())
		}

		return failure.BadGateway(message) //nolint:wrapcheck
	}

	sess.CompleteLoad(toRoomDetails(room), model.Guest{ID: user.ID.String(), NumericID: user.ID.Numeric()})

	return nil
}

func (s *serviceImpl) View(ctx context.Context, id string) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".View")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.owned(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromView(sess.View())

	return res, nil
}

func (s *serviceImpl) ShowPicker(ctx context.Context, id string) (dto.PageResponse, error) {
	return s.apply(ctx, "ShowPicker", id, (*session.Session).ShowPicker)
}

func (s *serviceImpl) HidePicker(ctx context.Context, id string) (dto.PageResponse, error) {
	return s.apply(ctx, "HidePicker", id, (*session.Session).HidePicker)
}

func (s *serviceImpl) UpdateDraft(ctx context.Context, id string, req dto.UpdateDraftRequest) (dto.PageResponse, error) {
	change, err := req.ToChange()
	if err != nil {
		return dto.PageResponse{}, toFailure(err)
	}

	return s.apply(ctx, "UpdateDraft", id, func(sess *session.Session) error {
		return sess.UpdateDraft(change)
	})
}

func (s *serviceImpl) Quote(ctx context.Context, id string) (dto.PageResponse, error) {
	return s.apply(ctx, "Quote", id, func(sess *session.Session) error {
		_, err := sess.Quote()

		return err //nolint:wrapcheck
	})
}

// Accept submits the quoted draft. The backend call is bound to the session rather
// than the request, so only closing the page aborts it.
func (s *serviceImpl) Accept(ctx context.Context, id string) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Accept")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.owned(ctx, id)
	if err != nil {
		return res, err
	}

	sub, err := sess.BeginSubmit()
	if err != nil {
		return res, toFailure(err)
	}

	bookCtx, cancel := sess.Bind(context.WithoutCancel(ctx))
	defer cancel()

	result, err := s.backend.BookRoom(bookCtx, sess.Token(), sub.RoomID, backend.BookingRequest{
		UserID:        toBackendID(sub),
		CheckInDate:   sub.CheckInDate.String(),
		CheckOutDate:  sub.CheckOutDate.String(),
		NumOfAdults:   sub.NumOfAdults,
		NumOfChildren: sub.NumOfChildren,
	})

	switch {
	case err == nil && result.StatusCode == http.StatusOK && result.BookingConfirmationCode != "":
		if !sess.CompleteSubmit(result.BookingConfirmationCode) {
			return res, toFailure(model.ErrSessionNotFound)
		}

		log.Info().Str("page", sess.ID).Str("code", result.BookingConfirmationCode).Msg("booking confirmed")
		s.afterConfirmed(ctx, sess.ID, sub, result.BookingConfirmationCode)
	default:
		message := backend.Message(err)
		if err == nil {
			message = result.Message
		}

		if message == "" {
			message = model.MessageBookingFailed
		}

		if !sess.FailSubmit(message) {
			return res, toFailure(model.ErrSessionNotFound)
		}

		log.Warn().Err(err).Str("page", sess.ID).Str("message", message).Msg("booking rejected")
		s.publish(ctx, event.NewBookingOutcome(sess.ID, sub, "", message))
	}

	res.FromView(sess.View())

	return res, nil
}

func (s *serviceImpl) Close(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Close")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.owned(ctx, id)
	if err != nil {
		return err
	}

	s.dispose(sess)

	return nil
}

// RunSweeper disposes idle and finished sessions until ctx is done.
func (s *serviceImpl) RunSweeper(ctx context.Context) {
	interval := time.Duration(s.cfg.Page.SweepIntervalSeconds) * time.Second
	ttl := time.Duration(s.cfg.Page.SessionTTLSeconds) * time.Second

	if interval <= 0 {
		log.Warn().Msg("Page session sweeper disabled")

		return
	}

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Dur("ttl", ttl).Msg("Page session sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Page session sweeper stopped")

			return
		case <-ticker.Chan():
			s.sweep(ttl)
		}
	}
}

func (s *serviceImpl) sweep(ttl time.Duration) {
	expired := s.repo.Expired(s.clock.Now(), ttl)
	if len(expired) == 0 {
		return
	}

	for _, sess := range expired {
		sess.Close()
	}

	log.Info().Int("count", len(expired)).Int("open", s.repo.Count()).Msg("Swept page sessions")
}

// Shutdown closes every open session and waits for pending receipt writes and
// outcome events, so callers may release the producers afterwards.
func (s *serviceImpl) Shutdown() {
	s.tasksMu.Lock()
	s.stopped = true
	s.tasksMu.Unlock()

	for _, sess := range s.repo.Drain() {
		sess.Close()
	}

	s.tasks.Wait()
}

// background runs fn off the request path. Work handed in after Shutdown is dropped.
func (s *serviceImpl) background(name string, fn func()) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()

	if s.stopped {
		log.Warn().Str("task", name).Msg("service shutting down, dropping background task")

		return
	}

	s.tasks.Add(1)

	go func() {
		defer s.tasks.Done()

		fn()
	}()
}

func (s *serviceImpl) apply(ctx context.Context, name, id string, action func(*session.Session) error) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+name)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.owned(ctx, id)
	if err != nil {
		return res, err
	}

	if err = action(sess); err != nil {
		return res, toFailure(err)
	}

	res.FromView(sess.View())

	return res, nil
}

// owned hides sessions of other users behind the same not-found answer.
func (s *serviceImpl) owned(ctx context.Context, id string) (*session.Session, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	sess, ok := s.repo.Get(id)
	if !ok || sess.OwnerID != user {
		return nil, toFailure(model.ErrSessionNotFound)
	}

	return sess, nil
}

func (s *serviceImpl) dispose(sess *session.Session) {
	sess.Close()
	s.repo.Delete(sess.ID)
}

func (s *serviceImpl) afterConfirmed(ctx context.Context, sessionID string, sub model.Submission, code string) {
	s.publish(ctx, event.NewBookingOutcome(sessionID, sub, code, ""))

	s.background("record receipt", func() {
		c := context.WithoutCancel(ctx)

		receipt := receiptModel.Receipt{
			ID:               uuid.NewString(),
			SessionID:        sessionID,
			RoomID:           sub.RoomID,
			UserID:           sub.UserID,
			CheckInDate:      sub.CheckInDate.Time(),
			CheckOutDate:     sub.CheckOutDate.Time(),
			NumAdults:        sub.NumOfAdults,
			NumChildren:      sub.NumOfChildren,
			TotalPrice:       sub.Quote.TotalPrice,
			ConfirmationCode: code,
			CreatedAt:        timezone.Now(),
		}

		if err := s.receipts.Record(c, receipt); err != nil {
			log.Error().Err(err).Str("code", code).Msg("failed to record booking receipt")
		}
	})
}

func (s *serviceImpl) publish(ctx context.Context, outcome event.BookingOutcome) {
	s.background("publish "+outcome.Type, func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.PublishBookingOutcome(c, outcome); err != nil {
			log.Error().Err(err).Str("type", outcome.Type).Msg("failed to publish booking outcome")
		}
	})
}

func toRoomDetails(room backend.Room) model.RoomDetails {
	details := model.RoomDetails{
		ID:          room.ID.String(),
		RoomType:    room.RoomType,
		RoomPrice:   room.RoomPrice,
		Description: room.Description,
		Bookings:    make([]model.ExistingBooking, len(room.Bookings)),
	}

	for i, booking := range room.Bookings {
		details.Bookings[i] = model.ExistingBooking{
			ID:           booking.ID.String(),
			CheckInDate:  booking.CheckInDate,
			CheckOutDate: booking.CheckOutDate,
		}
	}

	return details
}

func toBackendID(sub model.Submission) backend.ID {
	if sub.UserIDNumeric {
		return backend.NumberID(sub.UserID)
	}

	return backend.StringID(sub.UserID)
}

func toFailure(err error) error {
	switch {
	case errors.Is(err, model.ErrMissingDateRange),
		errors.Is(err, model.ErrInvalidGuestCount),
		errors.Is(err, model.ErrInvalidDate):
		return failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	case errors.Is(err, model.ErrSessionNotFound):
		return failure.NotFound(err.Error()) //nolint:wrapcheck
	case errors.Is(err, model.ErrSubmissionInProgress),
		errors.Is(err, model.ErrNoQuote),
		errors.Is(err, model.ErrUserUnknown),
		errors.Is(err, model.ErrInvalidTransition):
		return failure.Conflict(err.Error()) //nolint:wrapcheck
	default:
		return failure.InternalError(err) //nolint:wrapcheck
	}
}
