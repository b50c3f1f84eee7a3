package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/dyntree/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

// ErrNotFound is returned for an unknown sweep id.
var ErrNotFound = errors.New("storage: sweep not found")

// summarized columns recorded in the metadata
var summaryColumns = []string{"mass", "com_z", "kinetic", "potential", "total"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SweepMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	DOF       int                `json:"dof"`
	DOFLabel  string             `json:"dof_label"`
	From      float64            `json:"from"`
	To        float64            `json:"to"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes res under a new id. dofLabel is the overview label of the
// swept slot, e.g. "upper_RY".
func (s *Store) Save(model, dofLabel string, res *sweep.Result) (string, error) {
	now := time.Now()
	id := fmt.Sprintf("%s_%d_%s", model, now.Unix(), uuid.NewString()[:8])
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := SweepMetadata{
		ID:        id,
		Model:     model,
		Timestamp: now,
		DOF:       res.Params.DOF,
		DOFLabel:  dofLabel,
		From:      res.Params.From,
		To:        res.Params.To,
		Steps:     res.Params.Steps,
		Metrics:   metrics(res.Samples),
	}
	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(dir, samplesFile), res.Samples); err != nil {
		return "", err
	}
	return id, nil
}

func metrics(samples []sweep.Sample) map[string]float64 {
	out := make(map[string]float64)
	for _, col := range summaryColumns {
		xs, err := sweep.Series(samples, col)
		if err != nil || len(xs) == 0 {
			continue
		}
		sum := sweep.Summarize(xs)
		out[col+"_min"] = sum.Min
		out[col+"_max"] = sum.Max
		out[col+"_mean"] = sum.Mean
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func writeSamples(path string, samples []sweep.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"q"}, sweep.Columns...)); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{formatFloat(smp.Value)}
		for _, v := range smp.Row() {
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// shortest form that parses back to the same value
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every stored sweep, oldest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]SweepMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SweepMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]SweepMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(id string) (*SweepMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta SweepMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return &meta, nil
}

// LoadSamples reads the samples of a stored sweep back.
func (s *Store) LoadSamples(id string) ([]sweep.Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(sweep.Columns) + 1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	if len(records) < 2 {
		return []sweep.Sample{}, nil
	}

	samples := make([]sweep.Sample, 0, len(records)-1)
	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: %w", id, line+2, err)
			}
			vals[j] = v
		}
		smp, err := sweep.SampleFromRow(vals[0], vals[1:])
		if err != nil {
			return nil, err
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

// SamplesPath returns the csv file of a stored sweep.
func (s *Store) SamplesPath(id string) string {
	return filepath.Join(s.baseDir, id, samplesFile)
}
