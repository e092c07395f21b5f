package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/reelsense/reelsense/internal/analysis"
	"github.com/reelsense/reelsense/internal/models"
)

type fakeStrategy struct {
	gotAspects []string
	rows       []models.SentimentRow
}

func (f *fakeStrategy) Classify(ctx context.Context, review string, aspects []string) ([]models.SentimentRow, error) {
	f.gotAspects = aspects
	return f.rows, nil
}

func newTestRouter(strategy *fakeStrategy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	analyzer := analysis.NewAnalyzer([]string{"acting", "pacing"})
	analyzer.Register(models.MethodRemote, strategy)
	analyzer.Register(models.MethodLexicon, strategy)
	return NewRouter(analyzer, []string{"acting", "pacing"})
}

func TestHandleAnalyze(t *testing.T) {
	strategy := &fakeStrategy{rows: []models.SentimentRow{
		{Aspect: "acting", Sentiment: models.SentimentPositive, Confidence: 0.9},
	}}
	router := newTestRouter(strategy)

	body := `{"review":"Great acting.","aspects":["acting"],"method":"llm"}`
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	want := models.ResultTable{{Aspect: "acting", Sentiment: models.SentimentPositive}}
	if len(resp.Rows) != 1 || resp.Rows[0] != want[0] {
		t.Fatalf("rows = %v, want %v", resp.Rows, want)
	}
}

func TestHandleAnalyzeDefaultsMethod(t *testing.T) {
	strategy := &fakeStrategy{rows: []models.SentimentRow{
		{Aspect: "acting", Sentiment: models.SentimentNeutral},
	}}
	router := newTestRouter(strategy)

	req := httptest.NewRequest(http.MethodPost, "/analyze",
		strings.NewReader(`{"review":"Fine.","aspects":["acting"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 via the default method", rec.Code)
	}
	if strategy.gotAspects == nil {
		t.Fatal("default method did not reach the registered strategy")
	}
}

func TestHandleAnalyzeBadJSON(t *testing.T) {
	router := newTestRouter(&fakeStrategy{})

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnalyzeEmptyReview(t *testing.T) {
	router := newTestRouter(&fakeStrategy{})

	req := httptest.NewRequest(http.MethodPost, "/analyze",
		strings.NewReader(`{"review":"","method":"vader"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(resp.Rows) != 1 || resp.Rows[0].Sentiment != models.NoReviewSentiment {
		t.Fatalf("rows = %v, want the no-review row", resp.Rows)
	}
}

func TestRenderForm(t *testing.T) {
	router := newTestRouter(&fakeStrategy{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	page := rec.Body.String()
	for _, fragment := range []string{"acting", "pacing", "/analyze"} {
		if !strings.Contains(page, fragment) {
			t.Fatalf("form page missing %q", fragment)
		}
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakeStrategy{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
