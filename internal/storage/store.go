package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/argonmd/internal/config"
	"github.com/san-kum/argonmd/internal/experiment"
	"github.com/san-kum/argonmd/internal/metrics"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Cells       int                `json:"cells"`
	Scale       float64            `json:"scale"`
	Temperature float64            `json:"temperature_k"`
	Ensemble    string             `json:"ensemble"`
	Steps       int                `json:"steps"`
	SampleEvery int                `json:"sample_every"`
	Seed        int64              `json:"seed"`
	Metrics     map[string]float64 `json:"metrics"`
}

var sampleHeader = []string{
	"time_ps", "temperature_k", "kinetic_ha", "potential_ha", "total_ha",
	"pressure_atm", "momentum",
}

// Save writes a run directory with metadata.json and samples.csv and
// returns the generated run ID.
func (s *Store) Save(cfg *config.Config, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Ensemble, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Cells:       cfg.Cells,
		Scale:       cfg.Scale,
		Temperature: cfg.Temperature,
		Ensemble:    cfg.Ensemble,
		Steps:       result.StepsTaken,
		SampleEvery: cfg.SampleEvery,
		Seed:        cfg.Seed,
		Metrics:     result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}

	for _, sm := range result.Samples {
		row := make([]string, 0, len(sampleHeader))
		for _, v := range sampleValues(sm) {
			row = append(row, strconv.FormatFloat(v, 'g', 12, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func sampleValues(s metrics.Sample) []float64 {
	return []float64{
		s.Time, s.Temperature, s.Kinetic, s.Potential, s.Total,
		s.Pressure, s.Momentum,
	}
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads the sample series of a stored run.
func (s *Store) LoadSamples(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]metrics.Sample, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < len(sampleHeader) {
			continue
		}

		vals := make([]float64, len(sampleHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		samples = append(samples, metrics.Sample{
			Time:        vals[0],
			Temperature: vals[1],
			Kinetic:     vals[2],
			Potential:   vals[3],
			Total:       vals[4],
			Pressure:    vals[5],
			Momentum:    vals[6],
		})
	}

	return samples, nil
}
