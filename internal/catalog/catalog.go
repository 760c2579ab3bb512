// Package catalog stores the question groups and implements the random
// draw policy: a draw never returns an id in the caller's exclusion set,
// and an exclusion set covering the whole pool fails with ErrExhausted
// rather than silently repeating.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/playwheel/doublespin/internal/doublespin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownGroup = errors.New("unknown group")
	ErrExhausted    = errors.New("draw pool exhausted")
)

// Question ids are "<group>::<index>" so a question id alone is enough
// to locate its group.
const idSeparator = "::"

func questionID(group string, index int) string {
	return group + idSeparator + strconv.Itoa(index)
}

type Store struct {
	db *sql.DB
}

// NewStore prepares the catalog schema on db.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS groups (
			id       TEXT PRIMARY KEY,
			label    TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id       TEXT PRIMARY KEY,
			group_id TEXT NOT NULL REFERENCES groups(id),
			prompt   TEXT NOT NULL,
			answer   TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating catalog schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// ListGroups returns every group with its question count, in catalog order.
func (s *Store) ListGroups(ctx context.Context) ([]doublespin.GroupSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.label, COUNT(q.id)
		FROM groups g
		LEFT JOIN questions q ON q.group_id = g.id
		GROUP BY g.id
		ORDER BY g.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []doublespin.GroupSummary
	for rows.Next() {
		var g doublespin.GroupSummary
		if err := rows.Scan(&g.ID, &g.Label, &g.QuestionCount); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// RandomGroup draws a group id outside the exclusion set.
func (s *Store) RandomGroup(ctx context.Context, exclude []string) (string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM groups ORDER BY position`)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var eligible []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		if !slices.Contains(exclude, id) {
			eligible = append(eligible, id)
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if len(eligible) == 0 {
		return "", fmt.Errorf("%w: no groups left to draw", ErrExhausted)
	}
	return eligible[rand.IntN(len(eligible))], nil
}

// RandomQuestion draws a question from group whose id is outside the
// exclusion set.
func (s *Store) RandomQuestion(ctx context.Context, group string, exclude []string) (doublespin.Question, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups WHERE id = ?`, group).Scan(&exists)
	if err != nil {
		return doublespin.Question{}, err
	}
	if exists == 0 {
		return doublespin.Question{}, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM questions WHERE group_id = ? ORDER BY position
	`, group)
	if err != nil {
		return doublespin.Question{}, err
	}
	defer rows.Close()

	var eligible []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return doublespin.Question{}, err
		}
		if !slices.Contains(exclude, id) {
			eligible = append(eligible, id)
		}
	}
	if err := rows.Err(); err != nil {
		return doublespin.Question{}, err
	}
	if len(eligible) == 0 {
		return doublespin.Question{}, fmt.Errorf("%w: no more questions in this group", ErrExhausted)
	}

	q, _, err := s.QuestionByID(ctx, eligible[rand.IntN(len(eligible))])
	return q, err
}

// QuestionByID loads a question and its reference answer. The answer
// never leaves the server; it is only fed to the grader.
func (s *Store) QuestionByID(ctx context.Context, id string) (doublespin.Question, string, error) {
	if !strings.Contains(id, idSeparator) {
		return doublespin.Question{}, "", fmt.Errorf("%w: malformed question id %q", ErrNotFound, id)
	}

	var q doublespin.Question
	var answer string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, group_id, prompt, answer FROM questions WHERE id = ?
	`, id).Scan(&q.ID, &q.Group, &q.Prompt, &answer)
	if errors.Is(err, sql.ErrNoRows) {
		return doublespin.Question{}, "", fmt.Errorf("%w: question %q", ErrNotFound, id)
	}
	if err != nil {
		return doublespin.Question{}, "", err
	}
	return q, answer, nil
}
