// Package testhelpers hosts an in-process fake of the hostel REST API.
package testhelpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/stretchr/testify/require"

	"github.com/hostelworks/hostel-console/internal/models"
)

const (
	DefaultUsername = "svce"
	DefaultPassword = "1234"
	DefaultToken    = "0f5c2a9e4b7d1c3a8e6f0b2d4c6a8e0f"
)

// RecordedRequest is one request as the fake API saw it.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Decode unmarshals the recorded JSON body into v.
func (r RecordedRequest) Decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "decode recorded body")
}

type failure struct {
	status  int
	message string
	hangup  bool
}

// FakeAPI behaves like the hostel API: /api/login, /api/rooms, /api/members,
// /api/payments and the two reports. Tests can seed data, inject failures and
// hold requests open.
type FakeAPI struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	rooms    []models.Room
	members  []models.Member
	payments []models.Payment
	requests []RecordedRequest
	failures map[string]failure
	gates    map[string]chan struct{}
	nextID   int

	username    string
	password    string
	token       string
	omitToken   bool
	loginUser   models.UserProfile
	requireAuth bool
}

// NewFakeAPI starts the fake and closes it when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		t:         t,
		failures:  make(map[string]failure),
		gates:     make(map[string]chan struct{}),
		nextID:    1,
		username:  DefaultUsername,
		password:  DefaultPassword,
		token:     DefaultToken,
		loginUser: models.UserProfile{"username": DefaultUsername, "role": "admin"},
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", f.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/rooms", f.authed(f.handleListRooms)).Methods(http.MethodGet)
	api.HandleFunc("/rooms", f.authed(f.handleCreateRoom)).Methods(http.MethodPost)
	api.HandleFunc("/members", f.authed(f.handleListMembers)).Methods(http.MethodGet)
	api.HandleFunc("/members", f.authed(f.handleCreateMember)).Methods(http.MethodPost)
	api.HandleFunc("/payments", f.authed(f.handleListPayments)).Methods(http.MethodGet)
	api.HandleFunc("/payments", f.authed(f.handleCreatePayment)).Methods(http.MethodPost)
	api.HandleFunc("/reports/occupancy", f.authed(f.handleOccupancyReport)).Methods(http.MethodGet)
	api.HandleFunc("/reports/payments", f.authed(f.handlePaymentsReport)).Methods(http.MethodGet)

	// Same open CORS policy the real API runs with.
	handler := cors.AllowAll().Handler(f.record(r))
	f.server = httptest.NewServer(handler)
	t.Cleanup(f.Close)
	return f
}

// URL is the API base URL, e.g. http://127.0.0.1:PORT/api.
func (f *FakeAPI) URL() string {
	return f.server.URL + "/api"
}

// Close releases any held requests and stops the server.
func (f *FakeAPI) Close() {
	f.mu.Lock()
	for key, gate := range f.gates {
		close(gate)
		delete(f.gates, key)
	}
	f.mu.Unlock()
	f.server.CloseClientConnections()
	f.server.Close()
}

// UnreachableURL returns an API URL nothing is listening on.
func UnreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL + "/api"
	srv.Close()
	return u
}

// ---------------------------------------------------------------------------
// Login behaviour
// ---------------------------------------------------------------------------

// SetToken changes the token login hands out and RequireAuth accepts.
func (f *FakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

// OmitToken makes login succeed without a token in the response.
func (f *FakeAPI) OmitToken(omit bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.omitToken = omit
}

// SetLoginUser sets the profile login returns; nil leaves "user" out.
func (f *FakeAPI) SetLoginUser(user models.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginUser = user
}

// RequireAuth makes every route but login demand the current bearer token.
func (f *FakeAPI) RequireAuth(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requireAuth = on
}

// ---------------------------------------------------------------------------
// Seeding and inspection
// ---------------------------------------------------------------------------

func (f *FakeAPI) AddRoom(room models.Room) models.Room {
	f.mu.Lock()
	defer f.mu.Unlock()
	if room.ID == 0 {
		room.ID = f.allocID()
	}
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	f.rooms = append(f.rooms, room)
	return room
}

func (f *FakeAPI) AddMember(member models.Member) models.Member {
	f.mu.Lock()
	defer f.mu.Unlock()
	if member.ID == 0 {
		member.ID = f.allocID()
	}
	f.members = append(f.members, member)
	return member
}

func (f *FakeAPI) AddPayment(payment models.Payment) models.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if payment.ID == 0 {
		payment.ID = f.allocID()
	}
	f.payments = append(f.payments, payment)
	return payment
}

func (f *FakeAPI) Rooms() []models.Room {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Room(nil), f.rooms...)
}

func (f *FakeAPI) Members() []models.Member {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Member(nil), f.members...)
}

// FailWith makes every "METHOD /path" (path relative to /api) answer status with message.
func (f *FakeAPI) FailWith(method, path string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[routeKey(method, path)] = failure{status: status, message: message}
}

// HangUp makes "METHOD /path" drop the connection without answering.
func (f *FakeAPI) HangUp(method, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[routeKey(method, path)] = failure{hangup: true}
}

// Hold blocks "METHOD /path" until the returned release func is called (or the
// client gives up).
func (f *FakeAPI) Hold(method, path string) (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	key := routeKey(method, path)
	f.gates[key] = gate
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			if f.gates[key] == gate {
				delete(f.gates, key)
				close(gate)
			}
			f.mu.Unlock()
		})
	}
}

// Requests returns every recorded "METHOD /path" request, oldest first.
func (f *FakeAPI) Requests(method, path string) []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []RecordedRequest
	for _, r := range f.requests {
		if r.Method == method && r.Path == "/api"+path {
			out = append(out, r)
		}
	}
	return out
}

func (f *FakeAPI) Hits(method, path string) int {
	return len(f.Requests(method, path))
}

// LastRequest fails the test when no such request was recorded.
func (f *FakeAPI) LastRequest(method, path string) RecordedRequest {
	f.t.Helper()
	reqs := f.Requests(method, path)
	require.NotEmpty(f.t, reqs, "no %s %s request recorded", method, path)
	return reqs[len(reqs)-1]
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

func routeKey(method, path string) string {
	return method + " /api" + path
}

func (f *FakeAPI) allocID() int {
	id := f.nextID
	f.nextID++
	return id
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		key := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		fail, failing := f.failures[key]
		gate := f.gates[key]
		f.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			if fail.hangup {
				hj, ok := w.(http.Hijacker)
				if !ok {
					http.Error(w, "hijack unsupported", http.StatusInternalServerError)
					return
				}
				conn, _, err := hj.Hijack()
				if err == nil {
					conn.Close()
				}
				return
			}
			writeJSON(w, fail.status, map[string]string{"message": fail.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		want, on := "Bearer "+f.token, f.requireAuth
		f.mu.Unlock()
		if on && r.Header.Get("Authorization") != want {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token is missing or invalid"})
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func message(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"message": fmt.Sprintf(format, args...)})
}
