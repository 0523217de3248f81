package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/luminalearn/lumina-backend/internal/logger"
)

type stubRecommendationService struct {
	style string
	err   error
}

func (s *stubRecommendationService) RecommendStyle(ctx context.Context, lessonID uint) (string, error) {
	return s.style, s.err
}

func newRecommendationRouter(t *testing.T, style string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	h := NewRecommendationHandler(log, &stubRecommendationService{style: style})
	r := gin.New()
	r.GET("/lessons/:id/recommend-style", h.RecommendStyle)
	return r
}

func TestRecommendStyle_ReturnsStyle(t *testing.T) {
	r := newRecommendationRouter(t, "Visual")

	req := httptest.NewRequest(http.MethodGet, "/lessons/1/recommend-style", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["recommended_style"] != "Visual" {
		t.Fatalf("unexpected recommendation %v", got["recommended_style"])
	}
}

func TestRecommendStyle_NoRecommendationIsNull(t *testing.T) {
	r := newRecommendationRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/lessons/1/recommend-style", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	val, present := got["recommended_style"]
	if !present || val != nil {
		t.Fatalf("expected explicit null recommendation, got %v (present=%v)", val, present)
	}
}
