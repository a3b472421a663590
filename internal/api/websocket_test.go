package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

// issueTicket fetches a WebSocket ticket through the authenticated
// ticket endpoint.
func issueTicket(t *testing.T, srv *Server, token string) string {
	t.Helper()

	rec := doRequest(srv, http.MethodPost, "/api/v1/auth/ws-ticket", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ws-ticket status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Ticket string `json:"ticket"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parsing ticket response: %v", err)
	}
	if resp.Ticket == "" {
		t.Fatal("empty ticket")
	}
	return resp.Ticket
}

func TestWebSocket_TicketOnlyAuth(t *testing.T) {
	srv, _ := testServer(t, &fakeEmitter{})
	token := seedAdmin(t, srv)
	ticket := issueTicket(t, srv, token)

	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	// The dialer sends no Authorization header; the ticket alone must
	// authenticate the upgrade.
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws?ticket=" + ticket
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() with valid ticket: %v", err)
	}
	conn.Close()

	// Tickets are single-use
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("Dial() with consumed ticket succeeded, want rejection")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("replayed ticket: response = %v, want 401", resp)
	}
}

func TestWebSocket_RequiresTicket(t *testing.T) {
	srv, _ := testServer(t, &fakeEmitter{})

	rec := doRequest(srv, http.MethodGet, "/api/v1/ws", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no ticket: status = %d, want 401", rec.Code)
	}

	rec = doRequest(srv, http.MethodGet, "/api/v1/ws?ticket=bogus", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bogus ticket: status = %d, want 401", rec.Code)
	}
}

func TestWebSocket_ConfiguredPath(t *testing.T) {
	srv, _ := testServer(t, &fakeEmitter{})
	srv.wsCfg.Path = "/live"

	rec := doRequest(srv, http.MethodGet, "/api/v1/live", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("configured path not mounted: status = %d, want 401", rec.Code)
	}
	rec = doRequest(srv, http.MethodGet, "/api/v1/ws", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("default path still mounted: status = %d, want 404", rec.Code)
	}
}
