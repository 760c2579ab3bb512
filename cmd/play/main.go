// Command play is a terminal client for running a quiz session against
// a doublespin server: spin a group, spin a question, answer, and watch
// the scoreboard.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/playwheel/doublespin/internal/gateway"
	"github.com/playwheel/doublespin/internal/session"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "quiz API base URL")
	name := flag.String("name", "", "player name sent with graded answers")
	flag.Parse()

	if err := run(*serverURL, *name); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

const help = `commands:
  g  spin a group
  q  spin a question from the current group
  a  answer the current question
  s  show session state
  r  reset the game
  x  quit`

func run(serverURL, name string) error {
	ctx := context.Background()
	gw := gateway.New(serverURL, nil)
	orch := session.New(gw)

	if groups, err := gw.ListGroups(ctx); err == nil {
		fmt.Println("Groups in the catalog:")
		for _, g := range groups {
			fmt.Printf("  %-55s %d questions\n", g.Label, g.QuestionCount)
		}
	} else {
		fmt.Printf("warning: could not list groups: %v\n", err)
	}
	fmt.Println()
	fmt.Println(help)

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return in.Err()
		}

		switch strings.TrimSpace(in.Text()) {
		case "g":
			s, _ := orch.SpinGroup(ctx)
			printState(s)
		case "q":
			s, _ := orch.SpinQuestion(ctx)
			printState(s)
		case "a":
			fmt.Print("Your answer: ")
			if !in.Scan() {
				return in.Err()
			}
			score := orch.Snapshot().Scoreboard.Score
			s, _ := orch.SubmitAnswer(ctx, name, in.Text(), score)
			printState(s)
		case "s":
			printState(orch.Snapshot())
		case "r":
			printState(orch.Reset())
		case "x", "quit", "exit":
			return nil
		case "":
		default:
			fmt.Println(help)
		}
	}
}

func printState(s session.Session) {
	fmt.Println(s.Status())
	if q := s.CurrentQuestion; q != nil {
		fmt.Printf("\n[%s]\n%s\n\n", q.Group, q.Prompt)
	}
	if s.LastFeedback != "" {
		fmt.Println(s.LastFeedback)
	}
	fmt.Printf("Score: %d\n", s.Scoreboard.Score)
	if ev := s.Scoreboard.SpecialEvent; ev != nil {
		fmt.Println(ev.Message)
	}
	if s.Scoreboard.HasWinner {
		fmt.Println("🎉 You reached the WIN zone!")
	}
}
