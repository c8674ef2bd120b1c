package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// jsonFrame is the wire shape of a Frame: data is a
// list of [t, y] pairs with -1 for no pitch
type jsonFrame struct {
	Graph int          `json:"graph"`
	Label string       `json:"label,omitempty"`
	Data  [][2]float64 `json:"data"`
}

// JSONLinesDisplay writes each frame as one JSON object per line
type JSONLinesDisplay struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// JSONLines returns a display writing to w
func JSONLines(w io.Writer) *JSONLinesDisplay {
	return &JSONLinesDisplay{enc: json.NewEncoder(w)}
}

func (d *JSONLinesDisplay) Draw(frame Frame) error {
	out := jsonFrame{
		Graph: frame.Graph,
		Label: frame.Label,
		Data:  make([][2]float64, len(frame.Points)),
	}
	for i, s := range frame.Points {
		out.Data[i] = [2]float64{s.T, s.Y}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}
