package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	server "github.com/chunpat/life-pulse-ai/pkg/controller/http"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/repository/memory"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
)

type stubParser struct {
	parsed *model.ParsedLog
}

func (s *stubParser) Parse(ctx context.Context, text, lang string) (*model.ParsedLog, error) {
	return s.parsed, nil
}

// stubInsight is goroutine-safe: log creation warms the insight slot in a
// background dispatch, so calls arrive concurrently with the test flow.
type stubInsight struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
}

func (s *stubInsight) Generate(ctx context.Context, logs []*model.LogEntry, period types.PeriodType, lang string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.started != nil {
		select {
		case s.started <- struct{}{}:
		default:
		}
	}
	return "a calm, productive stretch", nil
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(repo,
		usecase.WithJWTSecret([]byte("test-secret")),
		usecase.WithLocation(time.UTC),
		usecase.WithParseService(&stubParser{parsed: &model.ParsedLog{
			Activity:        "Reading",
			Category:        types.CategoryLeisure,
			DurationMinutes: 30,
			Importance:      2,
		}}),
		usecase.WithInsightService(&stubInsight{}),
	)
	return server.New(uc)
}

func doJSON(t *testing.T, srv http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestServer_AuthFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "s3cret-pw",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var registered struct {
		Token string `json:"token"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered)).Required()
	gt.String(t, registered.Token).NotEqual("")

	t.Run("duplicate register conflicts", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name": "Alice", "email": "alice@example.com", "password": "other",
		})
		gt.Value(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("login returns a token", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "s3cret-pw",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("bad password is unauthorized", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "nope",
		})
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("garbage bearer token is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/logs", "bogus", nil)
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

func TestServer_LogsAndAnalytics(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "pw-123456",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var registered struct {
		Token string `json:"token"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered)).Required()
	token := registered.Token

	t.Run("structured create", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/logs", token, map[string]any{
			"rawText":         "one hour of focused work",
			"activity":        "Focused work",
			"category":        "Work",
			"durationMinutes": 60,
			"importance":      4,
			"timestamp":       time.Now().UnixMilli(),
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
	})

	t.Run("raw text create goes through the parser", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/logs", token, map[string]any{
			"rawText": "read a book for half an hour",
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		var entry model.LogEntry
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry)).Required()
		gt.Value(t, entry.Activity).Equal("Reading")
		gt.Value(t, entry.Category).Equal(types.CategoryLeisure)
	})

	t.Run("list shows both entries", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/logs", token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var body struct {
			Logs []*model.LogEntry `json:"logs"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.Array(t, body.Logs).Length(2)
	})

	t.Run("summary aggregates today", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/analytics/summary?period=day", token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var body struct {
			Summary struct {
				TotalMinutes int `json:"totalMinutes"`
				Entries      int `json:"entries"`
			} `json:"summary"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.Value(t, body.Summary.Entries).Equal(2)
		gt.Value(t, body.Summary.TotalMinutes).Equal(90)
	})

	t.Run("csv export", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/export?format=csv&period=day", token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.B(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv")).True()
		gt.B(t, strings.Contains(rec.Body.String(), "Focused work")).True()
	})

	t.Run("invalid period is a bad request", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/analytics/summary?period=year", token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestServer_GuestQuota(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo,
		usecase.WithJWTSecret([]byte("test-secret")),
		usecase.WithLocation(time.UTC),
		usecase.WithGuestMaxLogs(2),
	)
	srv := server.New(uc)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, srv, http.MethodPost, "/api/logs", "", map[string]any{
			"rawText":         "guest note",
			"activity":        fmt.Sprintf("Task %d", i),
			"category":        "Other",
			"durationMinutes": 10,
			"importance":      1,
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/logs", "", map[string]any{
		"rawText":         "guest note",
		"activity":        "Task 2",
		"category":        "Other",
		"durationMinutes": 10,
		"importance":      1,
	})
	gt.Value(t, rec.Code).Equal(http.StatusForbidden)
}

func TestServer_Insight(t *testing.T) {
	srv := newTestServer(t)

	t.Run("guest gets static text", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/ai/insight", "", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var insight model.Insight
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insight)).Required()
		gt.String(t, insight.Text).NotEqual("")
	})

	t.Run("registered user gets a generated insight", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name": "Carol", "email": "carol@example.com", "password": "pw-abcdef",
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
		var registered struct {
			Token string `json:"token"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered)).Required()

		rec = doJSON(t, srv, http.MethodPost, "/api/logs", registered.Token, map[string]any{
			"rawText": "read a book",
		})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		rec = doJSON(t, srv, http.MethodGet, "/api/ai/insight", registered.Token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var insight model.Insight
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insight)).Required()
		gt.Value(t, insight.Text).Equal("a calm, productive stretch")

		// explicit regenerate for another slot
		rec = doJSON(t, srv, http.MethodPost, "/api/ai/insight", registered.Token, map[string]string{
			"period": "week",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

}

func TestServer_InsightPrefetch(t *testing.T) {
	gen := &stubInsight{started: make(chan struct{}, 1)}
	repo := memory.New()
	uc := usecase.New(repo,
		usecase.WithJWTSecret([]byte("test-secret")),
		usecase.WithLocation(time.UTC),
		usecase.WithInsightService(gen),
	)
	srv := server.New(uc)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Dave", "email": "dave@example.com", "password": "pw-prefetch",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var registered struct {
		Token string `json:"token"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered)).Required()

	rec = doJSON(t, srv, http.MethodPost, "/api/logs", registered.Token, map[string]any{
		"rawText":         "one hour of focused work",
		"activity":        "Focused work",
		"category":        "Work",
		"durationMinutes": 60,
		"importance":      4,
		"timestamp":       time.Now().UnixMilli(),
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	// the daily slot is generated in the background, without any insight fetch
	select {
	case <-gen.started:
	case <-time.After(2 * time.Second):
		t.Fatal("no background insight generation after log create")
	}

	// once warmed, fetches are served from the cache
	deadline := time.Now().Add(2 * time.Second)
	for {
		rec := doJSON(t, srv, http.MethodGet, "/api/ai/insight", registered.Token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var insight model.Insight
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insight)).Required()
		if insight.Cached {
			gt.Value(t, insight.Text).Equal("a calm, productive stretch")
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("insight slot was never warmed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
