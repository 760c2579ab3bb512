package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/playwheel/doublespin/internal/doublespin"
)

func TestListGroups(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/groups" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"groups":[{"id":"history","label":"History","questionCount":4}]}`))
	}))
	t.Cleanup(ts.Close)

	groups, err := New(ts.URL, nil).ListGroups(context.Background())
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != "history" || groups[0].QuestionCount != 4 {
		t.Errorf("groups = %+v", groups)
	}
}

func TestDrawGroupSendsExclusions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/spin-group" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			ExcludeGroups []string `json:"excludeGroups"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if !slices.Equal(req.ExcludeGroups, []string{"a", "b"}) {
			t.Errorf("excludeGroups = %v", req.ExcludeGroups)
		}
		w.Write([]byte(`{"group":"c"}`))
	}))
	t.Cleanup(ts.Close)

	group, err := New(ts.URL, nil).DrawGroup(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("draw group: %v", err)
	}
	if group != "c" {
		t.Errorf("group = %q, want c", group)
	}
}

func TestDrawQuestion(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Group              string   `json:"group"`
			ExcludeQuestionIDs []string `json:"excludeQuestionIds"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Group != "history" {
			t.Errorf("group = %q", req.Group)
		}
		w.Write([]byte(`{"id":"history::0","group":"history","prompt":"Who?"}`))
	}))
	t.Cleanup(ts.Close)

	q, err := New(ts.URL, nil).DrawQuestion(context.Background(), "history", nil)
	if err != nil {
		t.Fatalf("draw question: %v", err)
	}
	if q.ID != "history::0" || q.Group != "history" {
		t.Errorf("question = %+v", q)
	}
}

func TestGradeAnswer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req doublespin.GradeRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.QuestionID != "history::0" || req.CurrentScore != 5 {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{
			"score": 8,
			"feedback": "Good",
			"scoreboard": {"score": 13, "hasWinner": false, "specialEvent": null}
		}`))
	}))
	t.Cleanup(ts.Close)

	res, err := New(ts.URL, nil).GradeAnswer(context.Background(), doublespin.GradeRequest{
		QuestionID:   "history::0",
		UserName:     "Alice",
		UserAnswer:   "because",
		CurrentScore: 5,
	})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Score != 8 || res.Scoreboard.Score != 13 {
		t.Errorf("result = %+v", res)
	}
}

func TestServerErrorCarriesDetail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"no more questions in this group"}`))
	}))
	t.Cleanup(ts.Close)

	_, err := New(ts.URL, nil).DrawQuestion(context.Background(), "history", nil)
	var ge *Error
	if !errors.As(err, &ge) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if ge.Kind != KindServer || ge.Status != http.StatusBadRequest {
		t.Errorf("kind = %v status = %d", ge.Kind, ge.Status)
	}
	if ge.Detail() != "no more questions in this group" {
		t.Errorf("detail = %q", ge.Detail())
	}
}

func TestMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	t.Cleanup(ts.Close)

	_, err := New(ts.URL, nil).DrawGroup(context.Background(), nil)
	var ge *Error
	if !errors.As(err, &ge) || ge.Kind != KindMalformed {
		t.Fatalf("error = %v, want malformed-response kind", err)
	}
	if ge.Detail() == "" {
		t.Error("malformed error should have a generic detail")
	}
}

func TestNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listening anymore

	_, err := New(ts.URL, nil).DrawGroup(context.Background(), nil)
	var ge *Error
	if !errors.As(err, &ge) || ge.Kind != KindNetwork {
		t.Fatalf("error = %v, want network-error kind", err)
	}
}
