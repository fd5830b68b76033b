package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
)

// Page identifies the screen a session is currently on.
type Page string

const (
	PageHome          Page = "home"
	PageSearchResults Page = "searchResults"
	PageBooking       Page = "booking"
	PageDashboard     Page = "dashboard"
)

var (
	// ErrLoginRequired guards booking and dashboard access. Logging in does
	// not auto-resume the attempt that triggered it; the caller re-invokes.
	ErrLoginRequired = errors.New("login required")

	// ErrLastPassenger rejects removing the only remaining passenger row.
	ErrLastPassenger = errors.New("a booking needs at least one passenger")

	// ErrNoDraft means a draft operation arrived with no booking in progress.
	ErrNoDraft = errors.New("no booking in progress")

	// ErrTrainNotFound means the train id is not in the current results.
	ErrTrainNotFound = errors.New("train not found in current search results")

	// ErrPassengerIndex means the passenger position is out of range.
	ErrPassengerIndex = errors.New("passenger index out of range")

	// ErrInvalidGender rejects a gender outside the accepted values.
	ErrInvalidGender = errors.New("gender must be Male, Female or Other")
)

// mockUser is the single identity the simulated login always produces.
var mockUser = models.User{
	ID:    "user123",
	Name:  "Priya Sharma",
	Email: "priya.sharma@example.com",
}

// SearchQuery mirrors the search form.
type SearchQuery struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}

// BookingDraft is the in-progress selection of train, class and passengers.
type BookingDraft struct {
	Train      models.Train       `json:"train"`
	Class      models.TrainClass  `json:"class"`
	Passengers []models.Passenger `json:"passengers"`
}

// Session owns all state for one client: current user, query, results, draft,
// booking history and chat transcript. Nothing else mutates it; handlers see
// deep copies and submit intents through SessionService.
type Session struct {
	ID string

	mu        sync.Mutex
	page      Page
	user      *models.User
	query     SearchQuery
	loading   bool
	searchGen uint64
	trains    []models.Train
	draft     *BookingDraft
	bookings  []models.Booking
	chat      []models.ChatMessage
}

// SessionView is the read-only deep copy of a session handed to handlers.
type SessionView struct {
	Page     Page                 `json:"page"`
	User     *models.User         `json:"user,omitempty"`
	Query    SearchQuery          `json:"query"`
	Loading  bool                 `json:"loading"`
	Trains   []models.Train       `json:"trains"`
	Draft    *BookingDraft        `json:"draft,omitempty"`
	Bookings []models.Booking     `json:"bookings"`
	Chat     []models.ChatMessage `json:"chat"`
}

// SessionService applies state transitions to sessions. Transitions hold the
// session lock, so the concurrent HTTP surface behaves like the
// single-threaded UI it models.
type SessionService struct {
	generator *AvailabilityGenerator
	bookings  *BookingService
	assistant *AssistantService
	latency   time.Duration
	logger    *logrus.Logger
}

// NewSessionService wires the session orchestration. latency is the simulated
// delay before search results are delivered; tests pass zero.
func NewSessionService(generator *AvailabilityGenerator, bookings *BookingService, assistant *AssistantService, latency time.Duration, logger *logrus.Logger) *SessionService {
	return &SessionService{
		generator: generator,
		bookings:  bookings,
		assistant: assistant,
		latency:   latency,
		logger:    logger,
	}
}

// Login sets the session user. The login is simulated and always succeeds.
func (s *SessionService) Login(sess *Session) models.User {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	user := mockUser
	sess.user = &user
	return user
}

// Logout clears the user and forces the session back to the home page,
// discarding any in-progress draft.
func (s *SessionService) Logout(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.user = nil
	sess.draft = nil
	sess.page = PageHome
}

// Search starts an asynchronous route search. Previous results are cleared
// immediately and the page moves to the results view in its loading state.
// Each search gets a fresh generation token; only results carrying the
// latest token are ever applied, so rapid successive searches resolve
// last-write-wins.
func (s *SessionService) Search(sess *Session, query SearchQuery) {
	sess.mu.Lock()
	sess.query = query
	sess.page = PageSearchResults
	sess.loading = true
	sess.trains = nil
	sess.searchGen++
	gen := sess.searchGen
	sess.mu.Unlock()

	go func() {
		if s.latency > 0 {
			time.Sleep(s.latency)
		}
		results := s.generator.Generate(query.From, query.To, query.Date)
		s.completeSearch(sess, gen, results)
	}()
}

// completeSearch delivers results for one in-flight search. Results tagged
// with a stale generation are dropped.
func (s *SessionService) completeSearch(sess *Session, gen uint64, trains []models.Train) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if gen != sess.searchGen {
		s.logger.WithFields(logrus.Fields{
			"session": sess.ID,
			"stale":   gen,
			"current": sess.searchGen,
		}).Debug("discarding stale search results")
		return
	}

	sess.trains = trains
	sess.loading = false
}

// Book moves the session into the booking draft for the selected train and
// class. Requires a logged-in user and a bookable (non-waitlisted) class.
// The draft starts with one passenger pre-filled from the user.
func (s *SessionService) Book(sess *Session, trainID string, class models.TrainClass) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.user == nil {
		return ErrLoginRequired
	}

	var train *models.Train
	for i := range sess.trains {
		if sess.trains[i].ID == trainID {
			train = &sess.trains[i]
			break
		}
	}
	if train == nil {
		return ErrTrainNotFound
	}

	sa, ok := train.AvailabilityFor(class)
	if !ok {
		return ErrUnknownClass
	}
	if sa.Waitlisted() {
		return ErrClassUnavailable
	}

	sess.draft = &BookingDraft{
		Train: train.Clone(),
		Class: class,
		Passengers: []models.Passenger{
			{Name: sess.user.Name, Age: 30, Gender: models.GenderFemale},
		},
	}
	sess.page = PageBooking
	return nil
}

// AddPassenger appends a default-valued passenger row to the draft.
func (s *SessionService) AddPassenger(sess *Session) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.draft == nil {
		return ErrNoDraft
	}
	sess.draft.Passengers = append(sess.draft.Passengers, models.Passenger{Gender: models.GenderMale})
	return nil
}

// RemovePassenger removes the passenger at the given position. The last
// remaining passenger cannot be removed.
func (s *SessionService) RemovePassenger(sess *Session, index int) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.draft == nil {
		return ErrNoDraft
	}
	if index < 0 || index >= len(sess.draft.Passengers) {
		return ErrPassengerIndex
	}
	if len(sess.draft.Passengers) == 1 {
		return ErrLastPassenger
	}
	sess.draft.Passengers = append(sess.draft.Passengers[:index], sess.draft.Passengers[index+1:]...)
	return nil
}

// UpdatePassenger applies the non-nil fields of the update to the passenger
// at the given position.
func (s *SessionService) UpdatePassenger(sess *Session, index int, update models.PassengerUpdate) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.draft == nil {
		return ErrNoDraft
	}
	if index < 0 || index >= len(sess.draft.Passengers) {
		return ErrPassengerIndex
	}

	p := &sess.draft.Passengers[index]
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Age != nil {
		p.Age = *update.Age
	}
	if update.Gender != nil {
		if !update.Gender.Valid() {
			return ErrInvalidGender
		}
		p.Gender = *update.Gender
	}
	return nil
}

// ConfirmBooking turns the draft into a confirmed booking, prepends it to the
// session's history and moves to the dashboard.
func (s *SessionService) ConfirmBooking(sess *Session) (*models.Booking, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.draft == nil {
		return nil, ErrNoDraft
	}

	booking, err := s.bookings.ConfirmBooking(&sess.draft.Train, sess.draft.Class, sess.draft.Passengers, sess.query.Date)
	if err != nil {
		return nil, err
	}

	// Most recent first.
	sess.bookings = append([]models.Booking{*booking}, sess.bookings...)
	sess.draft = nil
	sess.page = PageDashboard
	return booking, nil
}

// Back discards the draft and returns to the search results.
func (s *SessionService) Back(sess *Session) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.draft == nil {
		return ErrNoDraft
	}
	sess.draft = nil
	sess.page = PageSearchResults
	return nil
}

// Dashboard returns the booking history, most recent first. Without a
// logged-in user the session is redirected home and ErrLoginRequired is
// returned.
func (s *SessionService) Dashboard(sess *Session) ([]models.Booking, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.user == nil {
		sess.page = PageHome
		return nil, ErrLoginRequired
	}

	sess.page = PageDashboard
	return cloneBookings(sess.bookings), nil
}

// SendChat appends the user's message plus a pending bot placeholder, then
// resolves the placeholder asynchronously with the assistant's reply. Each
// send owns exactly one placeholder, so overlapping sends resolve
// independently and in place.
func (s *SessionService) SendChat(sess *Session, text string) (models.ChatMessage, models.ChatMessage) {
	sess.mu.Lock()

	userMsg := models.ChatMessage{ID: uuid.NewString(), Sender: models.SenderUser, Text: text}
	placeholder := models.ChatMessage{ID: uuid.NewString(), Sender: models.SenderBot, Pending: true}
	sess.chat = append(sess.chat, userMsg, placeholder)
	trainContext := cloneTrains(sess.trains)
	sess.mu.Unlock()

	go func() {
		reply := s.assistant.Ask(context.Background(), text, trainContext)
		s.resolveChat(sess, placeholder.ID, reply)
	}()

	return userMsg, placeholder
}

// resolveChat fills in the placeholder with the given id. A placeholder is
// resolved at most once; an already-resolved or unknown id is a no-op.
func (s *SessionService) resolveChat(sess *Session, id, reply string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i := range sess.chat {
		if sess.chat[i].ID == id && sess.chat[i].Pending {
			sess.chat[i].Text = reply
			sess.chat[i].Pending = false
			return
		}
	}
}

// ChatTranscript returns a copy of the session's chat history.
func (s *SessionService) ChatTranscript(sess *Session) []models.ChatMessage {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]models.ChatMessage, len(sess.chat))
	copy(out, sess.chat)
	return out
}

// RestoreUser re-attaches a previously issued identity to the session, e.g.
// when a valid bearer token arrives on a fresh session.
func (s *SessionService) RestoreUser(sess *Session, user models.User) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.user == nil {
		u := user
		sess.user = &u
	}
}

// Snapshot returns a deep read-only copy of the session.
func (s *SessionService) Snapshot(sess *Session) SessionView {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	view := SessionView{
		Page:     sess.page,
		Query:    sess.query,
		Loading:  sess.loading,
		Trains:   cloneTrains(sess.trains),
		Bookings: cloneBookings(sess.bookings),
		Chat:     append([]models.ChatMessage(nil), sess.chat...),
	}
	if sess.page == "" {
		view.Page = PageHome
	}
	if sess.user != nil {
		u := *sess.user
		view.User = &u
	}
	if sess.draft != nil {
		draft := BookingDraft{
			Train:      sess.draft.Train.Clone(),
			Class:      sess.draft.Class,
			Passengers: append([]models.Passenger(nil), sess.draft.Passengers...),
		}
		view.Draft = &draft
	}
	return view
}

func cloneTrains(trains []models.Train) []models.Train {
	out := make([]models.Train, len(trains))
	for i := range trains {
		out[i] = trains[i].Clone()
	}
	return out
}

func cloneBookings(bookings []models.Booking) []models.Booking {
	out := make([]models.Booking, len(bookings))
	for i := range bookings {
		out[i] = bookings[i]
		out[i].Train = bookings[i].Train.Clone()
		out[i].Passengers = append([]models.Passenger(nil), bookings[i].Passengers...)
	}
	return out
}
