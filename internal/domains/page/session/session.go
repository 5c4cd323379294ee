package session

import (
	"context"
	"sync"
	"time"

	"roomdesk/internal/domains/page/model"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Timings are the notice windows of a page.
type Timings struct {
	ValidationNotice   time.Duration
	SubmissionNotice   time.Duration
	ConfirmationNotice time.Duration
	ListingPath        string
}

// Session is one open booking page. All transitions go through its methods;
// results that arrive after Close are dropped.
type Session struct {
	ID      string
	OwnerID string
	RoomID  string

	token   string
	clock   clockwork.Clock
	timings Timings

	ctx    context.Context
	cancel context.CancelFunc

	mu               sync.Mutex
	state            model.State
	room             *model.RoomDetails
	guest            model.Guest
	draft            model.Draft
	quote            *model.Quote
	notice           *model.Notice
	noticeTimer      clockwork.Timer
	noticeSeq        uint64
	confirmationCode string
	redirect         string
	lastActive       time.Time
}

func New(id, ownerID, roomID, token string, clock clockwork.Clock, timings Timings) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		ID:         id,
		OwnerID:    ownerID,
		RoomID:     roomID,
		token:      token,
		clock:      clock,
		timings:    timings,
		ctx:        ctx,
		cancel:     cancel,
		state:      model.StateLoading,
		draft:      model.NewDraft(),
		lastActive: clock.Now(),
	}
}

// Context is cancelled when the session is closed.
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) Token() string {
	return s.token
}

// Bind derives a context that ends with either the request or the session.
func (s *Session) Bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)

	return ctx, func() {
		stop()
		cancel()
	}
}

func (s *Session) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// CompleteLoad moves a loading page to ready.
func (s *Session) CompleteLoad(room model.RoomDetails, guest model.Guest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.StateLoading {
		return
	}

	s.room = &room
	s.guest = guest
	s.state = model.StateReady
}

// FailLoad moves a loading page to its terminal error state.
func (s *Session) FailLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.StateLoading {
		return
	}

	s.state = model.StateError
}

func (s *Session) ShowPicker() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.interactive(); err != nil {
		return err
	}

	s.touch()

	switch s.state { //nolint:exhaustive
	case model.StateReady:
		s.state = model.StateDatePicking
	case model.StateBookingFailed:
		s.state = model.StateQuotePresented
	}

	return nil
}

// HidePicker closes the picker; the draft is kept, the quote is not.
func (s *Session) HidePicker() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.interactive(); err != nil {
		return err
	}

	s.touch()
	s.quote = nil
	s.state = model.StateReady

	return nil
}

// DraftChange holds the fields to merge into the draft; nil means unchanged.
type DraftChange struct {
	CheckInDate  *model.Date
	CheckOutDate *model.Date
	NumAdults    *int
	NumChildren  *int
}

func (s *Session) UpdateDraft(change DraftChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.interactive(); err != nil {
		return err
	}

	s.touch()

	if change.CheckInDate != nil {
		s.draft.CheckInDate = change.CheckInDate
	}

	if change.CheckOutDate != nil {
		s.draft.CheckOutDate = change.CheckOutDate
	}

	if change.NumAdults != nil {
		s.draft.NumAdults = *change.NumAdults
	}

	if change.NumChildren != nil {
		s.draft.NumChildren = *change.NumChildren
	}

	s.quote = nil
	s.state = model.StateDatePicking

	return nil
}

// Quote prices the draft. A validation failure posts an error notice and leaves
// no quote behind.
func (s *Session) Quote() (model.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.interactive(); err != nil {
		return model.Quote{}, err
	}

	s.touch()

	quote, err := model.CalculateQuote(s.room.RoomPrice, s.draft)
	if err != nil {
		s.quote = nil
		s.state = model.StateDatePicking
		s.postNotice(model.NoticeError, err.Error(), s.timings.ValidationNotice, nil)

		return model.Quote{}, err
	}

	s.quote = &quote
	s.state = model.StateQuotePresented

	return quote, nil
}

// BeginSubmit marks a submission in flight and returns what to send.
func (s *Session) BeginSubmit() (model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state { //nolint:exhaustive
	case model.StateSubmitting:
		return model.Submission{}, model.ErrSubmissionInProgress
	case model.StateQuotePresented, model.StateBookingFailed:
	case model.StateReady, model.StateDatePicking:
		return model.Submission{}, model.ErrNoQuote
	default:
		return model.Submission{}, model.ErrInvalidTransition
	}

	if s.quote == nil {
		return model.Submission{}, model.ErrNoQuote
	}

	if s.guest.ID == "" {
		return model.Submission{}, model.ErrUserUnknown
	}

	s.touch()
	s.state = model.StateSubmitting

	return model.Submission{
		RoomID:        s.RoomID,
		UserID:        s.guest.ID,
		UserIDNumeric: s.guest.NumericID,
		CheckInDate:   *s.draft.CheckInDate,
		CheckOutDate:  *s.draft.CheckOutDate,
		NumOfAdults:   s.draft.NumAdults,
		NumOfChildren: s.draft.NumChildren,
		Quote:         *s.quote,
	}, nil
}

// CompleteSubmit records a confirmed booking. The success notice stays up for the
// confirmation window, after which the page departs to the listing.
func (s *Session) CompleteSubmit(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.StateSubmitting {
		return false
	}

	s.confirmationCode = code
	s.state = model.StateBookingConfirmed
	s.postNotice(model.NoticeSuccess, model.ConfirmationMessage(code), s.timings.ConfirmationNotice, func() {
		s.state = model.StateDeparted
		s.redirect = s.timings.ListingPath
	})

	return true
}

// FailSubmit keeps the draft and quote so the user can retry.
func (s *Session) FailSubmit(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != model.StateSubmitting {
		return false
	}

	if message == "" {
		message = model.MessageBookingFailed
	}

	s.state = model.StateBookingFailed
	s.postNotice(model.NoticeError, message, s.timings.SubmissionNotice, func() {
		if s.state == model.StateBookingFailed {
			s.state = model.StateQuotePresented
		}
	})

	return true
}

func (s *Session) View() model.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := model.View{
		ID:               s.ID,
		State:            s.state,
		UserID:           s.guest.ID,
		Draft:            s.draft,
		ConfirmationCode: s.confirmationCode,
		Redirect:         s.redirect,
		Submitting:       s.state == model.StateSubmitting,
	}

	switch s.state { //nolint:exhaustive
	case model.StateDatePicking, model.StateQuotePresented, model.StateSubmitting, model.StateBookingFailed:
		view.PickerVisible = true
	}

	if s.room != nil {
		room := *s.room
		view.Room = &room
	}

	if s.quote != nil {
		quote := *s.quote
		view.Quote = &quote
	}

	if s.notice != nil {
		notice := *s.notice
		view.Notice = &notice
	}

	return view
}

// Close cancels outstanding backend calls and every pending timer.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == model.StateClosed {
		return
	}

	s.state = model.StateClosed
	s.cancel()
	s.stopNotice()

	log.Debug().Str("session", s.ID).Msg("page session closed")
}

// Expired reports whether the session should be swept.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state { //nolint:exhaustive
	case model.StateDeparted, model.StateClosed:
		return true
	case model.StateSubmitting:
		return false
	}

	return now.Sub(s.lastActive) > ttl
}

func (s *Session) interactive() error {
	switch s.state { //nolint:exhaustive
	case model.StateReady, model.StateDatePicking, model.StateQuotePresented, model.StateBookingFailed:
		return nil
	case model.StateSubmitting:
		return model.ErrSubmissionInProgress
	default:
		return model.ErrInvalidTransition
	}
}

func (s *Session) touch() {
	s.lastActive = s.clock.Now()
}

// postNotice replaces the current notice. onClear runs under the lock when the
// notice expires, unless another notice replaced it first.
func (s *Session) postNotice(kind model.NoticeKind, text string, ttl time.Duration, onClear func()) {
	s.stopNotice()

	s.noticeSeq++
	seq := s.noticeSeq

	s.notice = &model.Notice{Kind: kind, Text: text, ExpiresAt: s.clock.Now().Add(ttl)}
	s.noticeTimer = s.clock.AfterFunc(ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.noticeSeq != seq || s.state == model.StateClosed {
			return
		}

		s.notice = nil
		s.noticeTimer = nil

		if onClear != nil {
			onClear()
		}
	})
}

func (s *Session) stopNotice() {
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
		s.noticeTimer = nil
	}

	s.notice = nil
}
