// Package doublespin defines the core domain types of the quiz game.
// It has zero external dependencies — everything here is pure Go.
package doublespin

// GroupSummary is an immutable snapshot of one topic group in the catalog.
type GroupSummary struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	QuestionCount int    `json:"questionCount"`
}

// Question is a single drawn question. Immutable once drawn; the ID is
// unique within the catalog and the Group field names the owning group.
type Question struct {
	ID     string `json:"id"`
	Group  string `json:"group"`
	Prompt string `json:"prompt"`
}

type EventType string

const (
	EventForward  EventType = "forward"
	EventBackward EventType = "backward"
)

// SpecialEvent describes a scoreboard-altering effect attached to a
// grading result. Absent (nil) when no tile fired.
type SpecialEvent struct {
	Type    EventType `json:"type"`
	Steps   int       `json:"steps"`
	Message string    `json:"message"`
}

// Scoreboard is the cumulative game state across all graded answers.
// HasWinner is sticky within a session: once true it never reverts.
type Scoreboard struct {
	Score        int           `json:"score"`
	HasWinner    bool          `json:"hasWinner"`
	SpecialEvent *SpecialEvent `json:"specialEvent"`
}

// NewScoreboard returns the zero scoreboard a fresh session starts with.
func NewScoreboard() Scoreboard {
	return Scoreboard{Score: 0, HasWinner: false, SpecialEvent: nil}
}

// GradeRequest carries one answer to the grading gateway. CurrentScore
// is supplied by the caller so scoreboard reconciliation happens against
// an explicit baseline.
type GradeRequest struct {
	QuestionID   string `json:"questionId"`
	UserName     string `json:"userName,omitempty"`
	UserAnswer   string `json:"userAnswer"`
	CurrentScore int    `json:"currentScore"`
}

// GradeResult is the grading gateway's verdict: a 0-10 score, a short
// narrative, and the complete new scoreboard.
type GradeResult struct {
	Score      int        `json:"score"`
	Feedback   string     `json:"feedback"`
	Scoreboard Scoreboard `json:"scoreboard"`
}
