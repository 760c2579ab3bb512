package grader

import (
	"fmt"
	"math/rand/v2"

	"github.com/playwheel/doublespin/internal/doublespin"
)

// WinningScore is the board position at which the game is won.
const WinningScore = 30

// Rules computes the new scoreboard after a graded answer: earned
// points are added, then a special tile may push the player forward or
// backward by a random 1-5 steps. The score never drops below zero.
type Rules struct {
	winningScore int
	specialTiles map[int]doublespin.EventType
	steps        func() int
}

func DefaultRules() *Rules {
	return &Rules{
		winningScore: WinningScore,
		specialTiles: map[int]doublespin.EventType{
			4:  doublespin.EventForward,
			11: doublespin.EventBackward,
			16: doublespin.EventForward,
			22: doublespin.EventBackward,
			26: doublespin.EventBackward,
		},
		steps: func() int { return rand.IntN(5) + 1 },
	}
}

// Apply reconciles currentScore with the points earned this turn.
func (r *Rules) Apply(currentScore, earned int) doublespin.Scoreboard {
	score := currentScore + earned
	var event *doublespin.SpecialEvent

	if effect, ok := r.specialTiles[score]; ok {
		steps := r.steps()
		switch effect {
		case doublespin.EventForward:
			score += steps
			event = &doublespin.SpecialEvent{
				Type:    doublespin.EventForward,
				Steps:   steps,
				Message: fmt.Sprintf("🚀 LUCKY! Forward %d steps!", steps),
			}
		case doublespin.EventBackward:
			score -= steps
			event = &doublespin.SpecialEvent{
				Type:    doublespin.EventBackward,
				Steps:   steps,
				Message: fmt.Sprintf("⚠️ OOPS! Backward %d steps!", steps),
			}
		}
		if score < 0 {
			score = 0
		}
	}

	return doublespin.Scoreboard{
		Score:        score,
		HasWinner:    score >= r.winningScore,
		SpecialEvent: event,
	}
}
