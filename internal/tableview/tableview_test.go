package tableview

import (
	"strings"
	"testing"
)

func TestRenderEmptyHeaders(t *testing.T) {
	if got := Render(nil, [][]string{{"a"}}, nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderPadsAndTruncatesRows(t *testing.T) {
	out := Render(
		[]string{"Index", "Codec"},
		[][]string{{"1"}, {"2", "ac3", "ignored"}},
		[]Alignment{AlignRight, AlignLeft},
	)
	if !strings.Contains(out, "INDEX") && !strings.Contains(out, "Index") {
		t.Fatalf("header missing: %s", out)
	}
	if strings.Contains(out, "ignored") {
		t.Fatalf("extra cell should be dropped: %s", out)
	}
	if !strings.Contains(out, "ac3") {
		t.Fatalf("expected row content: %s", out)
	}
	if !strings.HasPrefix(out, "╭") {
		t.Fatalf("expected rounded style, got %q", out[:3])
	}
	if lines := strings.Count(out, "\n") + 1; lines != 6 {
		t.Fatalf("expected 6 lines (border, header, separator, 2 rows, border), got %d:\n%s", lines, out)
	}
}
