package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/dyntree/internal/sweep"
)

type ExportData struct {
	SweepMetadata
	Columns []string    `json:"columns"`
	Values  []float64   `json:"values"`
	Rows    [][]float64 `json:"rows"`
}

// ExportJSON writes a stored sweep, metadata and samples, as one JSON
// document.
func (s *Store) ExportJSON(id string, w io.Writer) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(id)
	if err != nil {
		return err
	}

	data := ExportData{
		SweepMetadata: *meta,
		Columns:       append([]string(nil), sweep.Columns...),
		Values:        make([]float64, len(samples)),
		Rows:          make([][]float64, len(samples)),
	}
	for i, smp := range samples {
		data.Values[i] = smp.Value
		data.Rows[i] = smp.Row()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies the stored samples.csv of id to w.
func (s *Store) ExportCSV(id string, w io.Writer) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	f, err := os.Open(s.SamplesPath(id))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
