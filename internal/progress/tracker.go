package progress

import (
	"strconv"
	"strings"
)

const notAvailable = "N/A"

// Update is a debounced progress emission.
type Update struct {
	// Percent is the value Text was formatted from, rounded to two decimals.
	Percent float64
	Text    string
	Speed   string
	Done    bool
}

// Tracker turns status blocks into strictly increasing two-decimal
// percentages. The zero value is not usable; call NewTracker.
type Tracker struct {
	duration  float64
	lastText  string
	lastValue float64
	lastSpeed string
}

// NewTracker tracks progress against a total duration in seconds. A
// non-positive duration never produces updates.
func NewTracker(duration float64) *Tracker {
	return &Tracker{duration: duration, lastValue: -1}
}

// Observe consumes one block and reports whether it produced an update.
// Blocks whose out_time_us or speed is N/A, missing, or unparseable are
// skipped, as are blocks that would not move the displayed value forward.
// The terminating block always yields 100.00 unless that was already shown.
func (t *Tracker) Observe(block Block) (Update, bool) {
	if t.duration <= 0 {
		return Update{}, false
	}
	if block.Done() {
		if t.lastText == "100.00" {
			return Update{}, false
		}
		speed := strings.TrimSpace(block["speed"])
		if speed == "" || speed == notAvailable {
			speed = t.lastSpeed
		}
		return t.emit("100.00", 100, speed, true), true
	}

	micros, ok := parseMicros(block["out_time_us"])
	if !ok {
		return Update{}, false
	}
	speed := strings.TrimSpace(block["speed"])
	if speed == "" || speed == notAvailable {
		return Update{}, false
	}

	fraction := (float64(micros) / 1e6) / t.duration
	fraction = min(max(fraction, 0), 1)
	text := strconv.FormatFloat(fraction*100, 'f', 2, 64)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || text == t.lastText || value <= t.lastValue {
		return Update{}, false
	}
	return t.emit(text, value, speed, false), true
}

func (t *Tracker) emit(text string, value float64, speed string, done bool) Update {
	t.lastText = text
	t.lastValue = value
	t.lastSpeed = speed
	return Update{Percent: value, Text: text, Speed: speed, Done: done}
}

func parseMicros(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == notAvailable {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
