package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/itsrohitnegi1/indian-railways-booking-app/config"
	"github.com/itsrohitnegi1/indian-railways-booking-app/middleware"
	"github.com/itsrohitnegi1/indian-railways-booking-app/models"
	"github.com/itsrohitnegi1/indian-railways-booking-app/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		JWTSecret:   "test-secret",
		GeminiModel: "gemini-2.5-flash",
		// No API key: the assistant stays offline in tests.
	}

	registry, err := services.LoadStationRegistry("")
	if err != nil {
		t.Fatalf("loading registry: %v", err)
	}
	generator := services.NewAvailabilityGenerator(registry, logger)
	generator.Seed(7)
	bookings := services.NewBookingService(logger)
	assistant := services.NewAssistantService(cfg, logger)
	sessions := services.NewSessionService(generator, bookings, assistant, 0, logger)
	store := services.NewSessionStore()

	h := New(registry, sessions, bookings, cfg.JWTSecret, logger)

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.EnsureSession(store))
	api.Use(middleware.OptionalAuth(cfg.JWTSecret, sessions))
	{
		api.GET("/stations", h.GetStations)
		api.GET("/classes", h.GetClasses)
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
		api.GET("/session", h.GetSession)
		api.POST("/search", h.SearchTrains)
		api.GET("/search", h.GetSearchResults)
		api.POST("/draft", h.CreateDraft)
		api.GET("/draft", h.GetDraft)
		api.DELETE("/draft", h.CancelDraft)
		api.POST("/draft/passengers", h.AddPassenger)
		api.PATCH("/draft/passengers/:index", h.UpdatePassenger)
		api.DELETE("/draft/passengers/:index", h.RemovePassenger)
		api.POST("/bookings", h.ConfirmBooking)
		api.GET("/bookings", h.Dashboard)
		api.POST("/chat", h.SendChat)
		api.GET("/chat", h.GetChat)
	}
	return router
}

type client struct {
	t       *testing.T
	router  *gin.Engine
	session string
	token   string
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.session != "" {
		req.Header.Set(middleware.SessionHeader, c.session)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if id := w.Header().Get(middleware.SessionHeader); id != "" {
		c.session = id
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
}

func (c *client) searchAndWait(from, to, date string) []models.Train {
	c.t.Helper()

	if w := c.do(http.MethodPost, "/api/search", models.SearchRequest{From: from, To: to, Date: date}); w.Code != http.StatusAccepted {
		c.t.Fatalf("search returned %d: %s", w.Code, w.Body.String())
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var resp models.SearchResponse
		decode(c.t, c.do(http.MethodGet, "/api/search", nil), &resp)
		if !resp.Loading {
			return resp.Trains
		}
		time.Sleep(5 * time.Millisecond)
	}
	c.t.Fatal("search did not finish in time")
	return nil
}

// bookableClass picks a class with seats from the listing.
func bookableClass(t *testing.T, train models.Train) models.SeatAvailability {
	t.Helper()
	for _, sa := range train.Availability {
		if sa.Seats > 0 {
			return sa
		}
	}
	t.Fatalf("train %s has no bookable class", train.TrainNumber)
	return models.SeatAvailability{}
}

func TestStationsAndClasses(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	var stations []models.Station
	w := c.do(http.MethodGet, "/api/stations", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stations returned %d", w.Code)
	}
	decode(t, w, &stations)
	if len(stations) != 10 {
		t.Fatalf("got %d stations", len(stations))
	}
	if c.session == "" {
		t.Fatal("no session id issued")
	}

	var classes []models.TrainClass
	decode(t, c.do(http.MethodGet, "/api/classes", nil), &classes)
	if len(classes) != 5 || classes[0] != models.ClassSleeper {
		t.Fatalf("classes = %v", classes)
	}
}

func TestBookingFlow(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	trains := c.searchAndWait("NDLS", "MMCT", "2024-01-01")
	if len(trains) == 0 {
		t.Fatal("no trains found")
	}
	train := trains[0]
	class := bookableClass(t, train)

	// Booking before login is rejected; the client shows the login overlay.
	if w := c.do(http.MethodPost, "/api/draft", models.BookRequest{TrainID: train.ID, Class: class.Class}); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated booking returned %d", w.Code)
	}

	var login models.LoginResponse
	decode(t, c.do(http.MethodPost, "/api/login", models.LoginRequest{Email: "priya.sharma@example.com", Password: "password123"}), &login)
	if login.User.Name != "Priya Sharma" || login.Token == "" {
		t.Fatalf("login = %+v", login)
	}
	c.token = login.Token

	// Login did not resume the booking: re-invoke explicitly.
	if w := c.do(http.MethodGet, "/api/draft", nil); w.Code != http.StatusNotFound {
		t.Fatalf("draft exists before booking: %d", w.Code)
	}
	if w := c.do(http.MethodPost, "/api/draft", models.BookRequest{TrainID: train.ID, Class: class.Class}); w.Code != http.StatusOK {
		t.Fatalf("booking returned %d: %s", w.Code, w.Body.String())
	}

	// Add a second passenger and fill it in.
	if w := c.do(http.MethodPost, "/api/draft/passengers", nil); w.Code != http.StatusOK {
		t.Fatalf("add passenger returned %d", w.Code)
	}
	name := "Rahul Verma"
	age := 34
	if w := c.do(http.MethodPatch, "/api/draft/passengers/1", models.PassengerUpdate{Name: &name, Age: &age}); w.Code != http.StatusOK {
		t.Fatalf("update passenger returned %d: %s", w.Code, w.Body.String())
	}

	var draftResp struct {
		Draft     services.BookingDraft `json:"draft"`
		TotalFare int                   `json:"total_fare"`
	}
	decode(t, c.do(http.MethodGet, "/api/draft", nil), &draftResp)
	if draftResp.TotalFare != class.Fare*2 {
		t.Fatalf("draft total fare = %d, want %d", draftResp.TotalFare, class.Fare*2)
	}

	var confirm models.BookingResponse
	w := c.do(http.MethodPost, "/api/bookings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm returned %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &confirm)
	if !confirm.Success || confirm.Booking == nil {
		t.Fatalf("confirm response = %+v", confirm)
	}
	if confirm.Booking.TotalFare != class.Fare*2 {
		t.Fatalf("booking fare = %d, want %d", confirm.Booking.TotalFare, class.Fare*2)
	}
	if confirm.Booking.Status != models.BookingConfirmed {
		t.Fatalf("booking status = %q", confirm.Booking.Status)
	}

	var history []models.Booking
	decode(t, c.do(http.MethodGet, "/api/bookings", nil), &history)
	if len(history) != 1 || history[0].ID != confirm.Booking.ID {
		t.Fatalf("dashboard = %+v", history)
	}

	// Logout drops access to the dashboard.
	c.do(http.MethodPost, "/api/logout", nil)
	c.token = ""
	if w := c.do(http.MethodGet, "/api/bookings", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("dashboard after logout returned %d", w.Code)
	}
}

func TestRemoveLastPassengerRejected(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	trains := c.searchAndWait("NDLS", "MMCT", "2024-01-01")
	train := trains[0]
	class := bookableClass(t, train)

	c.do(http.MethodPost, "/api/login", nil)
	if w := c.do(http.MethodPost, "/api/draft", models.BookRequest{TrainID: train.ID, Class: class.Class}); w.Code != http.StatusOK {
		t.Fatalf("booking returned %d", w.Code)
	}

	if w := c.do(http.MethodDelete, "/api/draft/passengers/0", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("removing last passenger returned %d", w.Code)
	}

	var draftResp struct {
		Draft services.BookingDraft `json:"draft"`
	}
	decode(t, c.do(http.MethodGet, "/api/draft", nil), &draftResp)
	if len(draftResp.Draft.Passengers) != 1 {
		t.Fatalf("draft has %d passengers, want 1", len(draftResp.Draft.Passengers))
	}
}

func TestSearchSameStationEmpty(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	if trains := c.searchAndWait("NDLS", "NDLS", "2024-01-01"); len(trains) != 0 {
		t.Fatalf("got %d trains for NDLS -> NDLS", len(trains))
	}
}

func TestChatOfflineAssistant(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t)}

	var resp models.ChatResponse
	w := c.do(http.MethodPost, "/api/chat", models.ChatRequest{Message: "Which trains run to Mumbai?"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("chat returned %d", w.Code)
	}
	decode(t, w, &resp)
	if !resp.Placeholder.Pending {
		t.Fatal("placeholder should start pending")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var transcript []models.ChatMessage
		decode(t, c.do(http.MethodGet, "/api/chat", nil), &transcript)
		if len(transcript) == 2 && !transcript[1].Pending {
			if transcript[1].ID != resp.Placeholder.ID {
				t.Fatal("reply replaced a different message")
			}
			if transcript[1].Text == "" {
				t.Fatal("empty reply")
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("assistant reply never resolved")
}
