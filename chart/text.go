package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/arthik/state"
)

// DefaultWidth is the width of text charts when none is configured.
const DefaultWidth = 60

// palette colours series in order, then slices of pies.
var palette = []lipgloss.Color{"#4CAF50", "#F44336", "#FF9800", "#42A5F5", "#9C27B0", "#FFC107", "#00BCD4"}

// TextBackend draws charts as unicode bars.
type TextBackend struct {
	// Color enables ANSI colours. Leave it off when the output is embedded in markdown.
	Color bool

	mu   sync.Mutex
	live int
}

// TextChart is the handle of a text chart.
type TextChart struct {
	name     string
	text     string
	released atomic.Bool
}

// String returns the drawn chart, or "" once released.
func (c *TextChart) String() string {
	if c.released.Load() {
		return ""
	}
	return c.text
}

// Released reports whether the chart was released.
func (c *TextChart) Released() bool { return c.released.Load() }

// Live returns the number of charts drawn and not yet released.
func (b *TextBackend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}

// Render draws cfg.
func (b *TextBackend) Render(cfg Config) (state.Handle, error) {
	if len(cfg.Series) == 0 {
		return nil, errors.New("no series")
	}
	for _, s := range cfg.Series {
		if len(s.Values) != len(cfg.Labels) {
			return nil, fmt.Errorf("series %q has %d values for %d labels", s.Label, len(s.Values), len(cfg.Labels))
		}
	}
	width := cfg.Width
	if width <= 0 {
		width = DefaultWidth
	}
	var text string
	switch cfg.Kind {
	case Doughnut, Pie:
		text = b.shares(cfg, width)
	case Bar, Line:
		text = b.bars(cfg, width)
	default:
		return nil, fmt.Errorf("unknown chart kind %q", cfg.Kind)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.live++
	return &TextChart{name: string(cfg.Name), text: text}, nil
}

// Release frees h. Releasing twice, or a foreign handle, is a no-op.
func (b *TextBackend) Release(h state.Handle) {
	c, ok := h.(*TextChart)
	if !ok {
		return
	}
	if !c.released.CompareAndSwap(false, true) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.live--
}

func (b *TextBackend) paint(i int, s string) string {
	if !b.Color {
		return s
	}
	return lipgloss.NewStyle().Foreground(palette[i%len(palette)]).Render(s)
}

// labelWidth returns the widest of labels.
func labelWidth(labels ...[]string) int {
	w := 0
	for _, ls := range labels {
		for _, l := range ls {
			w = max(w, lipgloss.Width(l))
		}
	}
	return w
}

func pad(s string, w int) string {
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}

func bar(value, scale float64, width int) string {
	if scale <= 0 || width <= 0 {
		return ""
	}
	n := int(math.Round(math.Abs(value) / scale * float64(width)))
	return strings.Repeat("█", min(n, width))
}

// shares draws the first series as parts of its total.
func (b *TextBackend) shares(cfg Config, width int) string {
	values := cfg.Series[0].Values
	total := 0.0
	for _, v := range values {
		total += math.Max(v, 0)
	}
	lw := labelWidth(cfg.Labels)
	barWidth := max(width-lw-20, 10)

	var buf strings.Builder
	if cfg.Title != "" {
		fmt.Fprintln(&buf, cfg.Title)
	}
	for i, label := range cfg.Labels {
		v := math.Max(values[i], 0)
		pct := 0.0
		if total > 0 {
			pct = v / total * 100
		}
		fmt.Fprintf(&buf, "%s %s %.2f (%.1f%%)\n", pad(label, lw), b.paint(i, pad(bar(v, total, barWidth), barWidth)), v, pct)
	}
	return buf.String()
}

// bars draws one bar per label and series, scaled on the largest value.
func (b *TextBackend) bars(cfg Config, width int) string {
	scale := 0.0
	var seriesLabels []string
	for _, s := range cfg.Series {
		seriesLabels = append(seriesLabels, s.Label)
		for _, v := range s.Values {
			scale = math.Max(scale, math.Abs(v))
		}
	}
	lw := labelWidth(cfg.Labels)
	sw := labelWidth(seriesLabels)
	barWidth := max(width-lw-sw-16, 10)

	var buf strings.Builder
	if cfg.Title != "" {
		fmt.Fprintln(&buf, cfg.Title)
	}
	for i, label := range cfg.Labels {
		for j, s := range cfg.Series {
			head := ""
			if j == 0 {
				head = label
			}
			sign := " "
			if s.Values[i] < 0 {
				sign = "-"
			}
			fmt.Fprintf(&buf, "%s %s %s%s %.2f\n", pad(head, lw), pad(s.Label, sw), sign, b.paint(j, pad(bar(s.Values[i], scale, barWidth), barWidth)), s.Values[i])
		}
	}
	return buf.String()
}
