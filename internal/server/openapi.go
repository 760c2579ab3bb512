package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playwheel/doublespin/internal/doublespin"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Double Spin Wheel API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Catalog and AI-grading backend for the Double Spin Wheel quiz game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/groups
	getGroups, _ := r.NewOperationContext(http.MethodGet, "/api/groups")
	getGroups.SetSummary("List groups")
	getGroups.SetDescription("Returns every topic group with its question count.")
	getGroups.AddRespStructure(GroupsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getGroups)

	// POST /api/spin-group
	spinGroup, _ := r.NewOperationContext(http.MethodPost, "/api/spin-group")
	spinGroup.SetSummary("Draw a group")
	spinGroup.SetDescription("Draws a random group outside the exclusion set. Fails when every group is excluded.")
	spinGroup.AddReqStructure(SpinGroupRequest{})
	spinGroup.AddRespStructure(SpinGroupResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	spinGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(spinGroup)

	// POST /api/spin-question
	spinQuestion, _ := r.NewOperationContext(http.MethodPost, "/api/spin-question")
	spinQuestion.SetSummary("Draw a question")
	spinQuestion.SetDescription("Draws a random question from a group, outside the exclusion set.")
	spinQuestion.AddReqStructure(SpinQuestionRequest{})
	spinQuestion.AddRespStructure(doublespin.Question{}, openapi.WithHTTPStatus(http.StatusOK))
	spinQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(spinQuestion)

	// POST /api/grade-answer
	grade, _ := r.NewOperationContext(http.MethodPost, "/api/grade-answer")
	grade.SetSummary("Grade an answer")
	grade.SetDescription("Scores a free-text answer with the grading model and returns the new scoreboard.")
	grade.AddReqStructure(doublespin.GradeRequest{})
	grade.AddRespStructure(GradeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	grade.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	grade.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(grade)

	// GET /api/game/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/game/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of grading results, special tiles, and winner announcements.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
