package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/playwheel/doublespin/internal/catalog"
	"github.com/playwheel/doublespin/internal/doublespin"
	"github.com/playwheel/doublespin/internal/grader"
)

type GradeResponse struct {
	Score      int                   `json:"score"`
	Feedback   string                `json:"feedback"`
	Question   doublespin.Question   `json:"question"`
	Scoreboard doublespin.Scoreboard `json:"scoreboard"`
}

func handleGrade(logger *slog.Logger, store *catalog.Store, g AnswerGrader, rules *grader.Rules, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req doublespin.GradeRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.UserAnswer = strings.TrimSpace(req.UserAnswer)
		if req.UserAnswer == "" {
			writeError(w, http.StatusBadRequest, "answer cannot be empty")
			return
		}

		question, referenceAnswer, err := store.QuestionByID(r.Context(), req.QuestionID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		eval, err := g.Grade(r.Context(), question.Prompt, referenceAnswer, req.UserAnswer)
		if err != nil {
			logger.Error("grading failed", "question_id", question.ID, "error", err)
			writeError(w, http.StatusBadGateway, "grading failed, please try again")
			return
		}

		scoreboard := rules.Apply(req.CurrentScore, eval.Score)

		broker.Publish(GameEvent{
			Type:       EventAnswerGraded,
			Player:     req.UserName,
			QuestionID: question.ID,
			Score:      eval.Score,
			Total:      scoreboard.Score,
			Message:    eval.Feedback,
		})
		if ev := scoreboard.SpecialEvent; ev != nil {
			broker.Publish(GameEvent{
				Type:    EventSpecialTile,
				Player:  req.UserName,
				Total:   scoreboard.Score,
				Message: ev.Message,
			})
		}
		if scoreboard.HasWinner {
			broker.Publish(GameEvent{
				Type:   EventWinner,
				Player: req.UserName,
				Total:  scoreboard.Score,
			})
		}

		writeJSON(w, http.StatusOK, GradeResponse{
			Score:      eval.Score,
			Feedback:   eval.Feedback,
			Question:   question,
			Scoreboard: scoreboard,
		})
	}
}
