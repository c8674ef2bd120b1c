package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-contour/algorithms/contour"
	"github.com/RyanBlaney/sonido-contour/config"
)

func TestTerminalRender(t *testing.T) {
	cfg := config.DefaultDisplayConfig()
	cfg.Width, cfg.Height = 20, 6

	var buf bytes.Buffer
	d := Terminal(&buf, cfg)

	frame := Frame{
		Graph: 1,
		Label: "ni3 hao3",
		Points: contour.Contour{
			contour.Voiced(0, 80),
			contour.Voiced(0.1, 82),
			contour.Silent(0.2),
			contour.Voiced(0.3, 86),
			contour.Voiced(0.4, 92),
		},
	}
	if err := d.Draw(frame); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "graph 1  ni3 hao3") {
		t.Errorf("missing header: %q", out)
	}
	if n := strings.Count(out, voicedGlyph); n != 4 {
		t.Errorf("drew %d voiced points, want 4:\n%s", n, out)
	}
	if n := strings.Count(out, silentGlyph); n != 1 {
		t.Errorf("drew %d silence markers, want 1:\n%s", n, out)
	}
	if !strings.Contains(out, "5 points") {
		t.Errorf("missing footer: %q", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header, top border, 6 rows, bottom border, footer
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10:\n%s", len(lines), out)
	}
	// highest pitch is on the first chart row, last column
	if !strings.Contains(lines[2], voicedGlyph) {
		t.Errorf("top row has no point:\n%s", out)
	}
}

func TestTerminalRenderEmptyFrame(t *testing.T) {
	cfg := config.DefaultDisplayConfig()
	d := Terminal(&bytes.Buffer{}, cfg)
	out := d.Render(Frame{})
	if strings.Contains(out, voicedGlyph) || !strings.Contains(out, "0 points") {
		t.Fatalf("unexpected empty render:\n%s", out)
	}
}
