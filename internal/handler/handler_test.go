package handler_test

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/clock"
    "github.com/iliyamo/cinema-ticket-booking/internal/handler"
    "github.com/iliyamo/cinema-ticket-booking/internal/repository"
    "github.com/iliyamo/cinema-ticket-booking/internal/router"
)

const secret = "test-secret"

type testServer struct {
    e     *echo.Echo
    clk   *clock.FakeClock
    flows *booking.Registry
    stats *repository.StatsRepo
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func newServer(t *testing.T) *testServer {
    t.Helper()
    // flow tokens are checked against the wall clock
    clk := clock.Fake(time.Now())
    catalog := repository.NewCatalogRepo()
    reviews := repository.NewReviewRepo(catalog)
    stats := repository.NewStatsRepo()
    settings := booking.DefaultSettings()
    settings.Occupancy = 0
    flows := booking.NewRegistry(catalog, clk, settings, 1, nil)
    flows.OnTicketIssued(stats.Record)

    e := echo.New()
    public := &handler.PublicHandler{Catalog: catalog, Reviews: reviews, Stats: stats, Flows: flows}
    flow := &handler.FlowHandler{Flows: flows, Reviews: reviews, Secret: secret, TokenTTL: time.Hour, Clock: clk}
    router.RegisterRoutes(e, public)
    router.RegisterPublic(e, public, passThrough)
    router.RegisterFlow(e, flow, secret, passThrough)
    return &testServer{e: e, clk: clk, flows: flows, stats: stats}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
    t.Helper()
    var req *http.Request
    if body != "" {
        req = httptest.NewRequest(method, path, strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    } else {
        req = httptest.NewRequest(method, path, nil)
    }
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    rec := httptest.NewRecorder()
    s.e.ServeHTTP(rec, req)
    return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
    t.Helper()
    var v T
    if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
        t.Fatalf("decode %q: %v", rec.Body.String(), err)
    }
    return v
}

type createResp struct {
    Token string       `json:"token"`
    Flow  booking.View `json:"flow"`
}

func (s *testServer) newFlow(t *testing.T) string {
    t.Helper()
    rec := s.do(t, http.MethodPost, "/v1/flows", "", "")
    if rec.Code != http.StatusCreated {
        t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
    }
    resp := decode[createResp](t, rec)
    if resp.Token == "" || resp.Flow.State != booking.StateBrowsing {
        t.Fatalf("unexpected create response %+v", resp)
    }
    return resp.Token
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
    t.Helper()
    if rec.Code != want {
        t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
    }
}

func TestHealth(t *testing.T) {
    s := newServer(t)
    s.newFlow(t)
    rec := s.do(t, http.MethodGet, "/healthz", "", "")
    expectStatus(t, rec, http.StatusOK)
    body := decode[map[string]any](t, rec)
    if body["status"] != "ok" || body["flows"] != float64(1) {
        t.Fatalf("unexpected health body %v", body)
    }
}

func TestPublicCatalog(t *testing.T) {
    s := newServer(t)

    rec := s.do(t, http.MethodGet, "/v1/movies?genre=Action", "", "")
    expectStatus(t, rec, http.StatusOK)
    list := decode[struct {
        Total int `json:"total"`
    }](t, rec)
    if list.Total == 0 {
        t.Fatal("expected at least one action movie")
    }

    rec = s.do(t, http.MethodGet, "/v1/movies/999", "", "")
    expectStatus(t, rec, http.StatusNotFound)

    rec = s.do(t, http.MethodGet, "/v1/movies/1/reviews", "", "")
    expectStatus(t, rec, http.StatusOK)
    sum := decode[repository.ReviewSummary](t, rec)
    if sum.Count != 3 {
        t.Fatalf("expected 3 seeded reviews, got %d", sum.Count)
    }

    for _, path := range []string{"/v1/genres", "/v1/theaters", "/v1/price-ranges", "/v1/stats"} {
        expectStatus(t, s.do(t, http.MethodGet, path, "", ""), http.StatusOK)
    }
}

func TestFlowRequiresToken(t *testing.T) {
    s := newServer(t)
    expectStatus(t, s.do(t, http.MethodGet, "/v1/flow", "", ""), http.StatusUnauthorized)
    expectStatus(t, s.do(t, http.MethodGet, "/v1/flow", "garbage", ""), http.StatusUnauthorized)
}

func TestBookingOverHTTP(t *testing.T) {
    s := newServer(t)
    tok := s.newFlow(t)

    rec := s.do(t, http.MethodPost, "/v1/flow/select", tok, `{"movie_id":"1"}`)
    expectStatus(t, rec, http.StatusUnauthorized)
    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/seats/A1/toggle", tok, ""), http.StatusUnauthorized)
    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/proceed", tok, ""), http.StatusUnauthorized)
    rec = s.do(t, http.MethodPost, "/v1/flow/pay", tok, `{"method":"upi","upi_id":"viewer@okbank"}`)
    expectStatus(t, rec, http.StatusUnauthorized)
    if body := decode[map[string]any](t, rec); body["error"] != "authorization_required" {
        t.Fatalf("expected authorization_required, got %v", body)
    }

    rec = s.do(t, http.MethodPost, "/v1/flow/login", tok, `{"email":"not-an-email"}`)
    expectStatus(t, rec, http.StatusUnprocessableEntity)
    if body := decode[map[string]any](t, rec); body["field"] != "email" {
        t.Fatalf("expected email field error, got %v", body)
    }

    rec = s.do(t, http.MethodPost, "/v1/flow/login", tok, `{"email":"Viewer@Example.com"}`)
    expectStatus(t, rec, http.StatusAccepted)
    if v := decode[booking.View](t, rec); !v.LoginPending || v.Authenticated {
        t.Fatalf("expected pending login, got %+v", v)
    }
    s.clk.Advance(time.Second)
    v := decode[booking.View](t, s.do(t, http.MethodGet, "/v1/flow", tok, ""))
    if !v.Authenticated || v.User != "viewer@example.com" {
        t.Fatalf("expected signed in user, got %+v", v)
    }

    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/select", tok, `{"movie_id":"1","show_time":"8:30 PM"}`), http.StatusOK)
    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/proceed", tok, ""), http.StatusUnprocessableEntity)
    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/seats/a1/toggle", tok, ""), http.StatusOK)
    rec = s.do(t, http.MethodPost, "/v1/flow/seats/A2/toggle", tok, "")
    expectStatus(t, rec, http.StatusOK)
    v = decode[booking.View](t, rec)
    if v.Session == nil || len(v.Session.Selected) != 2 || v.Session.Payable != v.Session.Total+v.Session.ServiceFee {
        t.Fatalf("unexpected session %+v", v.Session)
    }

    expectStatus(t, s.do(t, http.MethodGet, "/v1/flow/ticket", tok, ""), http.StatusConflict)
    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/proceed", tok, ""), http.StatusOK)

    rec = s.do(t, http.MethodPost, "/v1/flow/pay", tok, `{"method":"upi","upi_id":"bad"}`)
    expectStatus(t, rec, http.StatusUnprocessableEntity)

    rec = s.do(t, http.MethodPost, "/v1/flow/pay", tok, `{"method":"upi","upi_id":"viewer@okbank"}`)
    expectStatus(t, rec, http.StatusAccepted)
    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/pay", tok, `{"method":"upi","upi_id":"viewer@okbank"}`), http.StatusConflict)

    s.clk.Advance(2 * time.Second)
    v = decode[booking.View](t, s.do(t, http.MethodGet, "/v1/flow", tok, ""))
    if v.State != booking.StateTicketIssued || v.Session.Receipt == nil {
        t.Fatalf("expected issued ticket, got %+v", v)
    }

    rec = s.do(t, http.MethodGet, "/v1/flow/ticket", tok, "")
    expectStatus(t, rec, http.StatusOK)
    if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "ticket-TXN") {
        t.Fatalf("unexpected disposition %q", rec.Header().Get(echo.HeaderContentDisposition))
    }
    if !strings.HasPrefix(rec.Body.String(), "CINEMA BOOKING TICKET") {
        t.Fatalf("unexpected ticket body %q", rec.Body.String())
    }

    rec = s.do(t, http.MethodGet, "/v1/flow/ticket.pdf", tok, "")
    expectStatus(t, rec, http.StatusOK)
    if !strings.HasPrefix(rec.Body.String(), "%PDF") {
        t.Fatal("expected a PDF document")
    }
    rec = s.do(t, http.MethodGet, "/v1/flow/ticket/qr.png", tok, "")
    expectStatus(t, rec, http.StatusOK)
    if rec.Header().Get(echo.HeaderContentType) != "image/png" {
        t.Fatalf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
    }

    if snap := s.stats.Snapshot(); snap.Bookings != 1 || snap.Seats != 2 {
        t.Fatalf("expected one recorded booking, got %+v", snap)
    }

    rec = s.do(t, http.MethodPost, "/v1/flow/view-more", tok, "")
    expectStatus(t, rec, http.StatusOK)
    if v := decode[booking.View](t, rec); v.State != booking.StateBrowsing || v.Session != nil {
        t.Fatalf("expected fresh browsing state, got %+v", v)
    }
}

func TestFiltersAndReviews(t *testing.T) {
    s := newServer(t)
    tok := s.newFlow(t)

    rec := s.do(t, http.MethodPut, "/v1/flow/filters", tok, `{"query":"zzz-no-match"}`)
    expectStatus(t, rec, http.StatusOK)
    list := decode[struct {
        Total int `json:"total"`
    }](t, s.do(t, http.MethodGet, "/v1/flow/movies", tok, ""))
    if list.Total != 0 {
        t.Fatalf("expected no matches, got %d", list.Total)
    }

    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/movies/1/reviews", tok, `{"rating":5,"comment":"great"}`), http.StatusUnauthorized)

    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/login/google", tok, ""), http.StatusAccepted)
    s.clk.Advance(time.Second)

    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/movies/1/reviews", tok, `{"rating":9,"comment":"great"}`), http.StatusUnprocessableEntity)
    rec = s.do(t, http.MethodPost, "/v1/flow/movies/1/reviews", tok, `{"rating":5,"comment":"great"}`)
    expectStatus(t, rec, http.StatusCreated)

    sum := decode[repository.ReviewSummary](t, s.do(t, http.MethodGet, "/v1/movies/1/reviews", "", ""))
    if sum.Count != 4 || sum.Reviews[0].User != booking.GoogleAccount {
        t.Fatalf("expected new review first, got %+v", sum)
    }

    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/logout", tok, ""), http.StatusOK)
    expectStatus(t, s.do(t, http.MethodPost, "/v1/flow/movies/1/reviews", tok, `{"rating":5}`), http.StatusUnauthorized)
}

func TestCloseFlow(t *testing.T) {
    s := newServer(t)
    tok := s.newFlow(t)
    expectStatus(t, s.do(t, http.MethodDelete, "/v1/flow", tok, ""), http.StatusNoContent)
    expectStatus(t, s.do(t, http.MethodGet, "/v1/flow", tok, ""), http.StatusNotFound)
    expectStatus(t, s.do(t, http.MethodDelete, "/v1/flow", tok, ""), http.StatusNotFound)
    if s.flows.Len() != 0 {
        t.Fatalf("expected no flows, got %d", s.flows.Len())
    }
}
