package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playwheel/doublespin/internal/catalog"
	"github.com/playwheel/doublespin/internal/grader"
)

func addRoutes(r chi.Router, logger *slog.Logger, db *sql.DB, store *catalog.Store, g AnswerGrader, rules *grader.Rules) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Double Spin Wheel API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	r.Get("/api/groups", handleGroups(store))
	r.Post("/api/spin-group", handleSpinGroup(store))
	r.Post("/api/spin-question", handleSpinQuestion(store))
	r.Post("/api/grade-answer", handleGrade(logger, store, g, rules, broker))
	r.Get("/api/game/events", handleEvents(broker))
}
