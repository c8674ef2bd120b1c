package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/RyanBlaney/sonido-contour/algorithms/common"
	"github.com/RyanBlaney/sonido-contour/config"
)

const (
	voicedGlyph = "●"
	silentGlyph = "·"
	emptyGlyph  = " "
)

// Theme defines the chart colors
type Theme struct {
	Primary lipgloss.Color // points and border
	Dim     lipgloss.Color // silence markers and axis text
}

// DefaultTheme is the default chart theme
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// TerminalDisplay draws frames as a text chart. Time runs left to right
// from 0 to the last sample, pitch bottom to top over PlotRange. Silence
// markers sit on the bottom row.
type TerminalDisplay struct {
	mu      sync.Mutex
	w       io.Writer
	width   int
	height  int
	minSpan float64

	title  lipgloss.Style
	point  lipgloss.Style
	dim    lipgloss.Style
	border lipgloss.Style
}

// Terminal returns a chart display writing to w. Colors follow what w
// supports; a plain writer gets uncolored text.
func Terminal(w io.Writer, cfg config.DisplayConfig) *TerminalDisplay {
	r := lipgloss.NewRenderer(w)
	t := DefaultTheme
	return &TerminalDisplay{
		w:       w,
		width:   max(cfg.Width, 2),
		height:  max(cfg.Height, 2),
		minSpan: cfg.MinSpan,
		title:   r.NewStyle().Bold(true).Foreground(t.Primary),
		point:   r.NewStyle().Foreground(t.Primary),
		dim:     r.NewStyle().Foreground(t.Dim),
		border:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary),
	}
}

func (d *TerminalDisplay) Draw(frame Frame) error {
	chart := d.Render(frame)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := io.WriteString(d.w, chart+"\n"); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// Render returns the chart for frame without writing it
func (d *TerminalDisplay) Render(frame Frame) string {
	grid := make([][]string, d.height)
	for row := range grid {
		grid[row] = make([]string, d.width)
		for col := range grid[row] {
			grid[row][col] = emptyGlyph
		}
	}

	lo, hi, voiced := PlotRange(frame.Points, d.minSpan)
	var t0, t1 float64
	if n := len(frame.Points); n > 0 {
		t0, t1 = frame.Points[0].T, frame.Points[n-1].T
	}

	for _, s := range frame.Points {
		col := d.scale(common.InverseLerp(t0, t1, s.T), d.width)
		if !s.IsVoiced() {
			if grid[d.height-1][col] == emptyGlyph {
				grid[d.height-1][col] = d.dim.Render(silentGlyph)
			}
			continue
		}
		row := d.height - 1 - d.scale(common.InverseLerp(lo, hi, s.Y), d.height)
		grid[row][col] = d.point.Render(voicedGlyph)
	}

	lines := make([]string, d.height)
	for row := range grid {
		lines[row] = strings.Join(grid[row], "")
	}

	header := fmt.Sprintf("graph %d", frame.Graph)
	if frame.Label != "" {
		header += "  " + frame.Label
	}
	footer := fmt.Sprintf("%d points", len(frame.Points))
	if voiced {
		footer += fmt.Sprintf("  %.1f-%.1f st  %.2fs", lo, hi, t1-t0)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.title.Render(header),
		d.border.Render(strings.Join(lines, "\n")),
		d.dim.Render(footer),
	)
}

// scale maps a fraction in [0, 1] to a cell index in [0, n-1]
func (d *TerminalDisplay) scale(frac float64, n int) int {
	if math.IsNaN(frac) {
		frac = 0
	}
	return int(math.Round(common.Clamp(frac, 0, 1) * float64(n-1)))
}
