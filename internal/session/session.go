// Package session implements the game session: the state machine that
// sequences group selection, question selection, answer submission, and
// grading against a remote catalog/grading gateway.
package session

import (
	"context"
	"errors"

	"github.com/playwheel/doublespin/internal/doublespin"
)

// Phase drives the session state machine.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseGroupSelected    Phase = "group-selected"
	PhaseQuestionSelected Phase = "question-selected"
	PhaseGrading          Phase = "grading"
)

// Gateway is the remote catalog and grading authority. Draw operations
// must honor the exclusion sets; GradeAnswer returns the complete new
// scoreboard, which the session adopts as ground truth.
type Gateway interface {
	ListGroups(ctx context.Context) ([]doublespin.GroupSummary, error)
	DrawGroup(ctx context.Context, excludeGroups []string) (string, error)
	DrawQuestion(ctx context.Context, group string, excludeQuestions []string) (doublespin.Question, error)
	GradeAnswer(ctx context.Context, req doublespin.GradeRequest) (doublespin.GradeResult, error)
}

var (
	// ErrBusy rejects an intent while a gateway call is outstanding.
	ErrBusy = errors.New("another call is in flight")
	// ErrNoGroup rejects spin-question before any group was drawn.
	ErrNoGroup = errors.New("no group selected")
	// ErrNoQuestion rejects submit-answer before any question was drawn.
	ErrNoQuestion = errors.New("no question selected")
	// ErrEmptyAnswer rejects submit-answer with a blank answer.
	ErrEmptyAnswer = errors.New("answer is empty")
	// ErrStale marks a gateway response that arrived after Reset and
	// was discarded without touching session state.
	ErrStale = errors.New("stale response discarded")
)

// DetailError is implemented by gateway errors that carry a
// user-facing description; anything else surfaces via Error().
type DetailError interface {
	error
	Detail() string
}

func errDetail(err error) string {
	var de DetailError
	if errors.As(err, &de) {
		return de.Detail()
	}
	return err.Error()
}

// Session is an immutable snapshot of the game state.
type Session struct {
	Phase           Phase
	SelectedGroup   string
	UsedGroups      []string
	UsedQuestions   []string
	CurrentQuestion *doublespin.Question
	Scoreboard      doublespin.Scoreboard
	LastFeedback    string
	LastError       string
	Busy            bool
}

// Status derives the operator-facing status line. An error always wins
// over the busy indicator, which always wins over phase text.
func (s Session) Status() string {
	switch {
	case s.LastError != "":
		return s.LastError
	case s.Busy:
		return "Working..."
	}
	switch s.Phase {
	case PhaseGroupSelected:
		return "Current group: " + s.SelectedGroup
	case PhaseQuestionSelected:
		return "Read the question and write your answer"
	case PhaseGrading:
		return "The AI is grading your answer..."
	default:
		return "Spin a group to start the game"
	}
}
