package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/playwheel/doublespin/internal/doublespin"
)

// Orchestrator owns one game session. All mutations go through its
// intent methods; each commits fully or sets LastError, never partially.
// At most one gateway call is outstanding at a time: a second intent
// arriving while one is in flight is rejected with ErrBusy, not queued.
//
// Instantiate one Orchestrator per game; independent sessions do not
// share state.
type Orchestrator struct {
	gw Gateway

	mu    sync.Mutex
	epoch uint64
	state Session
}

func New(gw Gateway) *Orchestrator {
	return &Orchestrator{gw: gw, state: initialState()}
}

func initialState() Session {
	return Session{
		Phase:      PhaseIdle,
		Scoreboard: doublespin.NewScoreboard(),
	}
}

// Snapshot returns a copy of the current session state.
func (o *Orchestrator) Snapshot() Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Session {
	s := o.state
	s.UsedGroups = slices.Clone(s.UsedGroups)
	s.UsedQuestions = slices.Clone(s.UsedQuestions)
	if s.CurrentQuestion != nil {
		q := *s.CurrentQuestion
		s.CurrentQuestion = &q
	}
	if s.Scoreboard.SpecialEvent != nil {
		ev := *s.Scoreboard.SpecialEvent
		s.Scoreboard.SpecialEvent = &ev
	}
	return s
}

// SpinGroup draws a new topic group, excluding groups already used this
// session. Callable from any phase; it resets downstream question state.
func (o *Orchestrator) SpinGroup(ctx context.Context) (Session, error) {
	o.mu.Lock()
	if o.state.Busy {
		defer o.mu.Unlock()
		return o.snapshotLocked(), ErrBusy
	}
	// Clear feedback and the current question before the call so a slow
	// or failing draw never leaves stale results visible.
	o.state.LastError = ""
	o.state.LastFeedback = ""
	o.state.CurrentQuestion = nil
	o.state.Busy = true
	epoch := o.epoch
	exclude := slices.Clone(o.state.UsedGroups)
	o.mu.Unlock()

	group, err := o.gw.DrawGroup(ctx, exclude)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.epoch != epoch {
		return o.snapshotLocked(), ErrStale
	}
	o.state.Busy = false
	if err != nil {
		o.state.LastError = errDetail(err)
		return o.snapshotLocked(), err
	}

	o.state.SelectedGroup = group
	if !slices.Contains(o.state.UsedGroups, group) {
		o.state.UsedGroups = append(o.state.UsedGroups, group)
	}
	// Question no-repeat is scoped to the group draw, not the session.
	o.state.UsedQuestions = nil
	o.state.Phase = PhaseGroupSelected
	return o.snapshotLocked(), nil
}

// SpinQuestion draws a question from the selected group, excluding
// questions already drawn since the group was selected.
func (o *Orchestrator) SpinQuestion(ctx context.Context) (Session, error) {
	o.mu.Lock()
	if o.state.Busy {
		defer o.mu.Unlock()
		return o.snapshotLocked(), ErrBusy
	}
	o.state.LastError = ""
	if o.state.SelectedGroup == "" {
		o.state.LastError = ErrNoGroup.Error()
		defer o.mu.Unlock()
		return o.snapshotLocked(), ErrNoGroup
	}
	o.state.Busy = true
	epoch := o.epoch
	group := o.state.SelectedGroup
	exclude := slices.Clone(o.state.UsedQuestions)
	o.mu.Unlock()

	q, err := o.gw.DrawQuestion(ctx, group, exclude)
	if err == nil && q.Group != group {
		err = fmt.Errorf("gateway returned question %q for group %q, want %q", q.ID, q.Group, group)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.epoch != epoch {
		return o.snapshotLocked(), ErrStale
	}
	o.state.Busy = false
	if err != nil {
		o.state.LastError = errDetail(err)
		return o.snapshotLocked(), err
	}

	o.state.CurrentQuestion = &q
	o.state.UsedQuestions = append(o.state.UsedQuestions, q.ID)
	o.state.Phase = PhaseQuestionSelected
	o.state.LastFeedback = ""
	return o.snapshotLocked(), nil
}

// SubmitAnswer sends the answer for the current question to the grading
// gateway. currentScore is passed by the caller so reconciliation runs
// against an explicit baseline. On success the returned scoreboard
// replaces the session's wholesale and the question stays visible for
// review; the session does no score arithmetic of its own.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, userName, answer string, currentScore int) (Session, error) {
	o.mu.Lock()
	if o.state.Busy {
		defer o.mu.Unlock()
		return o.snapshotLocked(), ErrBusy
	}
	o.state.LastError = ""
	if o.state.CurrentQuestion == nil {
		o.state.LastError = ErrNoQuestion.Error()
		defer o.mu.Unlock()
		return o.snapshotLocked(), ErrNoQuestion
	}
	if strings.TrimSpace(answer) == "" {
		o.state.LastError = ErrEmptyAnswer.Error()
		defer o.mu.Unlock()
		return o.snapshotLocked(), ErrEmptyAnswer
	}
	o.state.Busy = true
	o.state.Phase = PhaseGrading
	epoch := o.epoch
	req := doublespin.GradeRequest{
		QuestionID:   o.state.CurrentQuestion.ID,
		UserName:     userName,
		UserAnswer:   answer,
		CurrentScore: currentScore,
	}
	o.mu.Unlock()

	res, err := o.gw.GradeAnswer(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.epoch != epoch {
		return o.snapshotLocked(), ErrStale
	}
	o.state.Busy = false
	// Success and failure both land back on the drawn question.
	o.state.Phase = PhaseQuestionSelected
	if err != nil {
		o.state.LastError = errDetail(err)
		return o.snapshotLocked(), err
	}

	sb := res.Scoreboard
	if o.state.Scoreboard.HasWinner {
		// A winner stays a winner even if a backward tile later drops
		// the score below the threshold.
		sb.HasWinner = true
	}
	o.state.Scoreboard = sb
	o.state.LastFeedback = fmt.Sprintf("Score: %d/10\n%s", res.Score, res.Feedback)
	return o.snapshotLocked(), nil
}

// Reset reinitializes the session. It is allowed even while a gateway
// call is in flight: the epoch bump makes that call's eventual result
// arrive stale, and stale results are discarded rather than applied.
func (o *Orchestrator) Reset() Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.epoch++
	o.state = initialState()
	return o.snapshotLocked()
}
