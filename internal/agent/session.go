package agent

import (
	"fmt"
	"strings"
	"sync"
)

// defaultHistoryLimit matches the original assistant's conversation window.
const defaultHistoryLimit = 15

// Draft accumulates order details across conversation turns. It is filled by
// the heuristic fallback when the model drops the JSON contract.
type Draft struct {
	ItemCodes []string
	Name      string
	Location  string
	Phone     string
}

// Complete reports whether the draft holds everything an order needs.
func (d Draft) Complete() bool {
	return len(d.ItemCodes) > 0 && d.Name != "" && d.Location != "" && d.Phone != ""
}

// Session is one customer conversation. A session handles one turn at a
// time; independent sessions run concurrently.
type Session struct {
	ID string

	mu      sync.Mutex
	history []string
	draft   Draft
	limit   int
}

func newSession(id string, limit int) *Session {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &Session{ID: id, limit: limit}
}

// Remember appends one line of history, evicting the oldest lines once the
// window is full.
func (s *Session) Remember(speaker, message string) {
	s.history = append(s.history, fmt.Sprintf("%s: %s", speaker, message))
	if len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
}

// History renders the retained turns, oldest first.
func (s *Session) History() string {
	return strings.Join(s.history, "\n")
}
