package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/http/handlers"
	"wanderplan/internal/http/middleware"
	"wanderplan/internal/modules/itinerary"
)

// stubPlanner is a test double for handlers.Planner.
type stubPlanner struct {
	planErr    error
	panicValue any
	trip       itinerary.TripRequest
	resched    itinerary.RescheduleRequest
	calls      int
}

func (s *stubPlanner) Plan(_ context.Context, req itinerary.TripRequest) (itinerary.PlanResult, error) {
	s.calls++
	s.trip = req
	if s.panicValue != nil {
		panic(s.panicValue)
	}
	if s.planErr != nil {
		return itinerary.PlanResult{}, s.planErr
	}
	return itinerary.PlanResult{Plan: "<h2>Day 1</h2>", Message: itinerary.PlanMessage(req)}, nil
}

func (s *stubPlanner) Reschedule(_ context.Context, req itinerary.RescheduleRequest) (itinerary.RescheduleResult, error) {
	s.calls++
	s.resched = req
	if s.panicValue != nil {
		panic(s.panicValue)
	}
	if s.planErr != nil {
		return itinerary.RescheduleResult{}, s.planErr
	}
	return itinerary.RescheduleResult{UpdatedPlan: "<h2>New Day 1</h2>", Message: itinerary.RescheduleMessage}, nil
}

func buildTestRouter(p handlers.Planner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	h := handlers.NewPlanHandler(p)
	r.POST("/plan", middleware.Recovery(handlers.MsgPlanFailed), h.Plan)
	r.POST("/reschedule", middleware.Recovery(handlers.MsgRescheduleFailed), h.Reschedule)
	r.POST("/export", middleware.Recovery(handlers.MsgExportFailed), handlers.Export)
	r.GET("/health", handlers.Health)
	return r
}

func doRaw(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	return doRaw(r, method, path, buf.String())
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestPlan_Success(t *testing.T) {
	p := &stubPlanner{}
	r := buildTestRouter(p)

	w := doJSON(r, http.MethodPost, "/plan", map[string]any{"source": " Mumbai ", "destination": "Goa", "days": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	out := decode(t, w)
	if out["plan"] == "" {
		t.Fatal("expected plan in response")
	}
	for _, want := range []string{"3", "Mumbai", "Goa"} {
		if !strings.Contains(out["message"], want) {
			t.Errorf("message %q missing %q", out["message"], want)
		}
	}
	if p.trip.Source != "Mumbai" {
		t.Errorf("expected trimmed source, got %q", p.trip.Source)
	}
}

func TestPlan_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"not json", `source=Mumbai`, handlers.MsgBodyMustBeJSON},
		{"empty body", ``, handlers.MsgBodyMustBeJSON},
		{"array body", `[1,2]`, handlers.MsgBodyMustBeJSON},
		{"trailing data", `{"source":"a"} {}`, handlers.MsgBodyMustBeJSON},
		{"empty object", `{}`, itinerary.ErrMissingFields.Error()},
		{"missing days", `{"source":"Mumbai","destination":"Goa"}`, itinerary.ErrMissingFields.Error()},
		{"blank source", `{"source":"   ","destination":"Goa","days":2}`, itinerary.ErrMissingFields.Error()},
		{"missing destination", `{"source":"Mumbai","days":2}`, itinerary.ErrMissingFields.Error()},
		{"days abc", `{"source":"Mumbai","destination":"Goa","days":"abc"}`, itinerary.ErrInvalidDays.Error()},
		{"days bool", `{"source":"Mumbai","destination":"Goa","days":true}`, itinerary.ErrInvalidDays.Error()},
		{"days zero", `{"source":"Mumbai","destination":"Goa","days":0}`, itinerary.ErrDaysOutOfRange.Error()},
		{"days 31", `{"source":"Mumbai","destination":"Goa","days":31}`, itinerary.ErrDaysOutOfRange.Error()},
		{"days negative string", `{"source":"Mumbai","destination":"Goa","days":"-4"}`, itinerary.ErrDaysOutOfRange.Error()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &stubPlanner{}
			w := doRaw(buildTestRouter(p), http.MethodPost, "/plan", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if got := decode(t, w)["error"]; got != tc.want {
				t.Fatalf("error = %q, want %q", got, tc.want)
			}
			if p.calls != 0 {
				t.Fatal("planner must not be called for invalid input")
			}
		})
	}
}

func TestPlan_NumericStringDays(t *testing.T) {
	p := &stubPlanner{}
	w := doRaw(buildTestRouter(p), http.MethodPost, "/plan", `{"source":"Delhi","destination":"Agra","days":"2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if p.trip.Days != 2 {
		t.Fatalf("expected days=2, got %d", p.trip.Days)
	}
}

func TestPlan_InternalError(t *testing.T) {
	p := &stubPlanner{planErr: errors.New("sanitize plan: boom")}
	w := doJSON(buildTestRouter(p), http.MethodPost, "/plan", map[string]any{"source": "A", "destination": "B", "days": 1})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != handlers.MsgPlanFailed {
		t.Fatalf("unexpected error %q", got)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Fatal("internal error detail leaked")
	}
}

func TestPlan_PanicBecomes500(t *testing.T) {
	p := &stubPlanner{panicValue: "nil map write"}
	w := doJSON(buildTestRouter(p), http.MethodPost, "/plan", map[string]any{"source": "A", "destination": "B", "days": 30})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != handlers.MsgPlanFailed {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestReschedule_Success(t *testing.T) {
	p := &stubPlanner{}
	w := doJSON(buildTestRouter(p), http.MethodPost, "/reschedule", map[string]string{"plan": "old plan", "suggestion": "make it adventurous"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	out := decode(t, w)
	if out["updatedPlan"] == "" || out["message"] != itinerary.RescheduleMessage {
		t.Fatalf("unexpected body %+v", out)
	}
	if p.resched.Suggestion != "make it adventurous" {
		t.Fatalf("unexpected request %+v", p.resched)
	}
}

func TestReschedule_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		`{}`:                            itinerary.ErrRescheduleFields.Error(),
		`{"plan":"x"}`:                  itinerary.ErrRescheduleFields.Error(),
		`{"suggestion":"x"}`:            itinerary.ErrRescheduleFields.Error(),
		`{"plan":" ","suggestion":"x"}`: itinerary.ErrRescheduleFields.Error(),
		`not json`:                      handlers.MsgBodyMustBeJSON,
		`"a string"`:                    handlers.MsgBodyMustBeJSON,
	}
	for body, want := range cases {
		w := doRaw(buildTestRouter(&stubPlanner{}), http.MethodPost, "/reschedule", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
			continue
		}
		if got := decode(t, w)["error"]; got != want {
			t.Errorf("%s: error = %q, want %q", body, got, want)
		}
	}
}

func TestReschedule_PanicBecomes500(t *testing.T) {
	p := &stubPlanner{panicValue: errors.New("unexpected")}
	w := doJSON(buildTestRouter(p), http.MethodPost, "/reschedule", map[string]string{"plan": "p", "suggestion": "s"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != handlers.MsgRescheduleFailed {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestHealth(t *testing.T) {
	w := doRaw(buildTestRouter(&stubPlanner{}), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	out := decode(t, w)
	if out["status"] != "healthy" || out["message"] == "" {
		t.Fatalf("unexpected body %+v", out)
	}
}

func TestExport_Text(t *testing.T) {
	w := doJSON(buildTestRouter(&stubPlanner{}), http.MethodPost, "/export", map[string]string{
		"plan":        "<h2>Day 1</h2><p>Beach walk</p>",
		"format":      "txt",
		"source":      "Mumbai",
		"destination": "Goa",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=trip-plan-Mumbai-to-Goa.txt" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if body := w.Body.String(); !strings.Contains(body, "Day 1") || !strings.Contains(body, "Beach walk") || strings.Contains(body, "<p>") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestExport_PDF(t *testing.T) {
	w := doJSON(buildTestRouter(&stubPlanner{}), http.MethodPost, "/export", map[string]string{
		"plan":   "<h2>🌅 Day 1</h2><p>Fort visit, ₹500 entry</p>",
		"format": "pdf",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=trip-plan-rescheduled-to-destination.pdf" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestExport_BadRequests(t *testing.T) {
	cases := map[string]string{
		`{"format":"txt"}`:                    "Plan is required!",
		`{"plan":"  ","format":"pdf"}`:        "Plan is required!",
		`{"plan":"<p>x</p>","format":"docx"}`: "Format must be txt or pdf.",
		`{"plan":"<p>x</p>","format":7}`:      "Format must be txt or pdf.",
		`nope`:                                handlers.MsgBodyMustBeJSON,
	}
	for body, want := range cases {
		w := doRaw(buildTestRouter(&stubPlanner{}), http.MethodPost, "/export", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
			continue
		}
		if got := decode(t, w)["error"]; got != want {
			t.Errorf("%s: error = %q, want %q", body, got, want)
		}
	}
}
