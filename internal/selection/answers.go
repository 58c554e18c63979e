package selection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// AnswerSource supplies operator answers to prompts.
type AnswerSource interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// PromptSource writes prompts to an output stream and reads one line per answer.
type PromptSource struct {
	mu     sync.Mutex
	reader *bufio.Reader
	out    io.Writer
}

// NewPromptSource wraps an interactive input stream, usually stdin.
func NewPromptSource(in io.Reader, out io.Writer) *PromptSource {
	if out == nil {
		out = io.Discard
	}
	return &PromptSource{reader: bufio.NewReader(in), out: out}
}

// Answer prints prompt and returns the next line with surrounding whitespace
// removed. A final line without a newline is still returned; io.EOF is only
// reported when no input remains.
func (p *PromptSource) Answer(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
