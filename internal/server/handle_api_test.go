package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/playwheel/doublespin/internal/catalog"
	"github.com/playwheel/doublespin/internal/database"
	"github.com/playwheel/doublespin/internal/doublespin"
	"github.com/playwheel/doublespin/internal/grader"
)

// fakeGrader returns a fixed evaluation, or fails when err is set.
type fakeGrader struct {
	eval   grader.Evaluation
	err    error
	called int
}

func (f *fakeGrader) Grade(_ context.Context, _, _, _ string) (grader.Evaluation, error) {
	f.called++
	if f.err != nil {
		return grader.Evaluation{}, f.err
	}
	return f.eval, nil
}

func testRouter(t *testing.T, g AnswerGrader) *chi.Mux {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := catalog.NewStore(ctx, db)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if err := catalog.Seed(ctx, logger, store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rules := grader.DefaultRules()
	r := chi.NewRouter()
	addRoutes(r, logger, db, store, g, rules)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleGroups(t *testing.T) {
	r := testRouter(t, &fakeGrader{})

	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GroupsResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Groups) == 0 {
		t.Fatal("expected seeded groups")
	}
	for _, g := range resp.Groups {
		if g.QuestionCount == 0 {
			t.Errorf("group %q has no questions", g.ID)
		}
	}
}

func TestHandleSpinGroup(t *testing.T) {
	r := testRouter(t, &fakeGrader{})

	// Collect the full catalog first.
	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var groups GroupsResponse
	json.NewDecoder(w.Body).Decode(&groups)

	// Excluding all but one forces a deterministic draw.
	var exclude []string
	want := groups.Groups[len(groups.Groups)-1].ID
	for _, g := range groups.Groups[:len(groups.Groups)-1] {
		exclude = append(exclude, g.ID)
	}

	w = postJSON(t, r, "/api/spin-group", SpinGroupRequest{ExcludeGroups: exclude})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp SpinGroupResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Group != want {
		t.Errorf("group = %q, want %q", resp.Group, want)
	}

	// Excluding everything exhausts the pool.
	w = postJSON(t, r, "/api/spin-group", SpinGroupRequest{ExcludeGroups: append(exclude, want)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("exhausted spin: expected 400, got %d", w.Code)
	}
}

func TestHandleSpinQuestion(t *testing.T) {
	r := testRouter(t, &fakeGrader{})

	w := postJSON(t, r, "/api/spin-question", SpinQuestionRequest{Group: "FINANCIAL WELLBEING"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var q doublespin.Question
	json.NewDecoder(w.Body).Decode(&q)
	if q.Group != "FINANCIAL WELLBEING" || q.ID == "" || q.Prompt == "" {
		t.Errorf("question = %+v", q)
	}

	w = postJSON(t, r, "/api/spin-question", SpinQuestionRequest{Group: "NOPE"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown group: expected 400, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/spin-question", SpinQuestionRequest{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing group: expected 400, got %d", w.Code)
	}
}

func TestHandleGrade(t *testing.T) {
	fg := &fakeGrader{eval: grader.Evaluation{Score: 8, Feedback: "Good"}}
	r := testRouter(t, fg)

	w := postJSON(t, r, "/api/grade-answer", doublespin.GradeRequest{
		QuestionID:   "FINANCIAL WELLBEING::0",
		UserName:     "Alice",
		UserAnswer:   "Knowing how to manage money.",
		CurrentScore: 5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GradeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Score != 8 || resp.Feedback != "Good" {
		t.Errorf("grade = %d %q", resp.Score, resp.Feedback)
	}
	if resp.Question.ID != "FINANCIAL WELLBEING::0" {
		t.Errorf("question echo = %+v", resp.Question)
	}
	// 5 + 8 = 13 does not sit on a special tile.
	if resp.Scoreboard.Score != 13 || resp.Scoreboard.SpecialEvent != nil {
		t.Errorf("scoreboard = %+v", resp.Scoreboard)
	}
}

func TestHandleGradeEmptyAnswer(t *testing.T) {
	fg := &fakeGrader{eval: grader.Evaluation{Score: 8}}
	r := testRouter(t, fg)

	w := postJSON(t, r, "/api/grade-answer", doublespin.GradeRequest{
		QuestionID: "FINANCIAL WELLBEING::0",
		UserAnswer: "   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if fg.called != 0 {
		t.Error("empty answer must not reach the grader")
	}
}

func TestHandleGradeUnknownQuestion(t *testing.T) {
	r := testRouter(t, &fakeGrader{})

	w := postJSON(t, r, "/api/grade-answer", doublespin.GradeRequest{
		QuestionID: "FINANCIAL WELLBEING::99",
		UserAnswer: "anything",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleGradeGraderFailure(t *testing.T) {
	fg := &fakeGrader{err: errors.New("model timeout")}
	r := testRouter(t, fg)

	w := postJSON(t, r, "/api/grade-answer", doublespin.GradeRequest{
		QuestionID: "FINANCIAL WELLBEING::0",
		UserAnswer: "anything",
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error == "" {
		t.Error("expected error detail in body")
	}
}
