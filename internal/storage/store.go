// Package storage persists simulation samples as a flat CSV record.
package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/popsim/internal/dynamo"
)

// Header is the first row of every record.
var Header = []string{"Time", "Population", "GrowthRate", "PercentageOfK"}

const precision = 4

// Writer streams samples to CSV. It implements [dynamo.Observer] so it
// can be attached to a simulator; the first write error is kept and
// returned by Flush or Close.
type Writer struct {
	w      *csv.Writer
	closer io.Closer
	rows   int
	err    error
}

// NewWriter writes the header to w and returns a Writer for the rows.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("storage: cannot write header: %w", err)
	}
	return &Writer{w: cw}, nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create %s: %w", path, err)
	}
	return file, nil
}

// Create opens path for writing, creating parent directories as needed.
func Create(path string) (*Writer, error) {
	file, err := createFile(path)
	if err != nil {
		return nil, err
	}

	w, err := NewWriter(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	w.closer = file
	return w, nil
}

func (w *Writer) Write(s dynamo.Sample) error {
	if w.err != nil {
		return w.err
	}
	row := []string{
		formatFloat(s.Time),
		formatFloat(s.Population),
		formatFloat(s.GrowthRate),
		formatFloat(s.PercentOfCapacity),
	}
	if err := w.w.Write(row); err != nil {
		w.err = fmt.Errorf("storage: cannot write row %d: %w", w.rows, err)
		return w.err
	}
	w.rows++
	return nil
}

func (w *Writer) OnSample(s dynamo.Sample) {
	_ = w.Write(s)
}

// Rows is the number of samples written so far.
func (w *Writer) Rows() int { return w.rows }

func (w *Writer) Flush() error {
	w.w.Flush()
	if w.err != nil {
		return w.err
	}
	return w.w.Error()
}

func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// WriteAll drains seq into w and returns the number of rows written.
func WriteAll(w io.Writer, seq iter.Seq[dynamo.Sample]) (int, error) {
	cw, err := NewWriter(w)
	if err != nil {
		return 0, err
	}
	for s := range seq {
		if err := cw.Write(s); err != nil {
			return cw.Rows(), err
		}
	}
	return cw.Rows(), cw.Flush()
}

// Save writes seq to a new file at path.
func Save(path string, seq iter.Seq[dynamo.Sample]) (int, error) {
	file, err := createFile(path)
	if err != nil {
		return 0, err
	}
	n, err := WriteAll(file, seq)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func Load(path string) ([]dynamo.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open %s: %w", path, err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses a record written by [Writer]. The header must match.
func Read(r io.Reader) ([]dynamo.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("storage: empty record")
	}
	for i, name := range Header {
		if records[0][i] != name {
			return nil, fmt.Errorf("storage: unexpected column %q, want %q", records[0][i], name)
		}
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [4]float64
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: row %d column %s: %w", i+1, Header[j], err)
			}
			vals[j] = v
		}
		samples = append(samples, dynamo.Sample{
			Time:              vals[0],
			Population:        vals[1],
			GrowthRate:        vals[2],
			PercentOfCapacity: vals[3],
		})
	}

	return samples, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}
