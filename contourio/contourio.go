// Package contourio reads and writes contours as files.
//
// Every format stores a contour as a list of [t, y] pairs, the same shape
// the display collaborators receive. Unvoiced samples are written as -1.
package contourio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-contour/algorithms/contour"
)

var (
	// ErrUnknownFormat is returned for an unrecognised extension or format name
	ErrUnknownFormat = errors.New("unknown contour format")
	// ErrMalformed is returned when a point is not a [t, y] pair
	ErrMalformed = errors.New("malformed contour")
)

// Format selects a file encoding
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatCSV
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCSV:
		return "csv"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat maps a name or file extension (with or without the dot) to a
// Format
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(name), ".") {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the Format from the file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ReadFile decodes the contour stored at path
func ReadFile(path string) (contour.Contour, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	c, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// WriteFile encodes c to path, creating or truncating it
func WriteFile(path string, c contour.Contour) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, c, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// Decode reads a contour in the given format
func Decode(r io.Reader, format Format) (contour.Contour, error) {
	if format == FormatCSV {
		return decodeCSV(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read contour: %w", err)
	}

	var points [][]float64
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &points)
	case FormatYAML:
		err = yaml.Unmarshal(data, &points)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &points)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", format, err)
	}
	return fromPoints(points)
}

// Encode writes c in the given format
func Encode(w io.Writer, c contour.Contour, format Format) error {
	points := toPoints(c)

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.Marshal(points)
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(points)
	case FormatMsgpack:
		data, err = msgpack.Marshal(points)
	case FormatCSV:
		return encodeCSV(w, c)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write contour: %w", err)
	}
	return nil
}

func toPoints(c contour.Contour) [][]float64 {
	points := make([][]float64, len(c))
	for i, s := range c {
		points[i] = []float64{s.T, s.Y}
	}
	return points
}

func fromPoints(points [][]float64) (contour.Contour, error) {
	c := make(contour.Contour, len(points))
	for i, p := range points {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: point %d has %d values", ErrMalformed, i, len(p))
		}
		c[i] = contour.Sample{T: p[0], Y: p[1]}
	}
	return c, nil
}

// decodeCSV reads "t,y" rows. A first row that does not parse as numbers is
// taken as a header.
func decodeCSV(r io.Reader) (contour.Contour, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	c := make(contour.Contour, 0, len(records))
	for i, record := range records {
		t, errT := strconv.ParseFloat(record[0], 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		if errT != nil || errY != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("%w: csv row %d: %v", ErrMalformed, i+1, errors.Join(errT, errY))
		}
		c = append(c, contour.Sample{T: t, Y: y})
	}
	return c, nil
}

func encodeCSV(w io.Writer, c contour.Contour) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"t", "y"}); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, s := range c {
		row := []string{
			strconv.FormatFloat(s.T, 'g', -1, 64),
			strconv.FormatFloat(s.Y, 'g', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
