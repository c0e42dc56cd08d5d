package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/argonmd/internal/metrics"
)

type ExportData struct {
	Meta    RunMetadata      `json:"meta"`
	Samples []metrics.Sample `json:"samples"`
}

// ExportJSON writes a stored run as a single JSON document to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Samples: samples})
}

// ExportJSONFile writes a stored run as JSON to path.
func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.ExportJSON(file, runID)
}
