package progress

import (
	"bufio"
	"io"
	"strings"
)

// Block is one status report from the engine: the key=value pairs up to and
// including the terminating progress= line.
type Block map[string]string

// Done reports whether this block is the final one of the stream.
func (b Block) Done() bool {
	return b["progress"] == "end"
}

// Parser splits a machine-readable status stream into blocks.
type Parser struct {
	scanner *bufio.Scanner
}

// NewParser reads status lines from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{scanner: bufio.NewScanner(r)}
}

// Next returns the next complete block. It returns io.EOF once the stream
// ends; a trailing partial block without a progress= line is discarded.
// Lines without '=' are ignored.
func (p *Parser) Next() (Block, error) {
	block := Block{}
	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		block[key] = strings.TrimSpace(value)
		if key == "progress" {
			return block, nil
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
