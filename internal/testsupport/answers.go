package testsupport

import (
	"context"
	"io"
	"sync"
)

// ScriptedAnswers replays canned answers in order and reports io.EOF once
// they run out. It records every prompt it was asked.
type ScriptedAnswers struct {
	mu      sync.Mutex
	answers []string
	prompts []string
}

// NewScriptedAnswers returns a source that yields answers in order.
func NewScriptedAnswers(answers ...string) *ScriptedAnswers {
	return &ScriptedAnswers{answers: append([]string(nil), answers...)}
}

// Answer returns the next scripted answer.
func (s *ScriptedAnswers) Answer(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next, nil
}

// Prompts returns the prompts asked so far.
func (s *ScriptedAnswers) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// Remaining reports how many answers were not consumed.
func (s *ScriptedAnswers) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}
