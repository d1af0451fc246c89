package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store persists run metadata and per-step diagnostic series under a base
// directory, one subdirectory per run.
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
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Bodies     int                `json:"bodies"`
	Steps      int                `json:"steps"`
	Dt         float64            `json:"dt"`
	Backend    string             `json:"backend"`
	Theta      float64            `json:"theta"`
	Softening  float64            `json:"softening"`
	Collisions bool               `json:"collisions"`
	Seed       int64              `json:"seed"`
	Timestamp  time.Time          `json:"timestamp"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Sample is one per-step diagnostic row.
type Sample struct {
	Time    float64
	Energy  float64
	Px      float64
	Py      float64
	Pz      float64
	Bodies  int
	StepMS  float64
	TracerX float64
}

var seriesHeader = []string{"time", "energy", "px", "py", "pz", "bodies", "step_ms", "tracer_x"}

// Save writes the run directory with metadata.json and series.csv and
// returns the run id.
func (s *Store) Save(meta RunMetadata, series []Sample) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Preset, time.Now().Unix())
	if meta.Preset == "" {
		runID = fmt.Sprintf("run_%d", time.Now().Unix())
	}
	meta.ID = runID
	meta.Timestamp = time.Now()

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(seriesHeader); err != nil {
		return "", err
	}
	for _, row := range series {
		rec := []string{
			strconv.FormatFloat(row.Time, 'f', 6, 64),
			strconv.FormatFloat(row.Energy, 'g', -1, 64),
			strconv.FormatFloat(row.Px, 'g', -1, 64),
			strconv.FormatFloat(row.Py, 'g', -1, 64),
			strconv.FormatFloat(row.Pz, 'g', -1, 64),
			strconv.Itoa(row.Bodies),
			strconv.FormatFloat(row.StepMS, 'f', 4, 64),
			strconv.FormatFloat(row.TracerX, 'g', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}

	return runID, nil
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
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

// LoadSeries reads back the per-step diagnostics of a run.
func (s *Store) LoadSeries(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make([]Sample, 0, len(records))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < len(seriesHeader) {
			continue
		}
		var row Sample
		row.Time, _ = strconv.ParseFloat(rec[0], 64)
		row.Energy, _ = strconv.ParseFloat(rec[1], 64)
		row.Px, _ = strconv.ParseFloat(rec[2], 64)
		row.Py, _ = strconv.ParseFloat(rec[3], 64)
		row.Pz, _ = strconv.ParseFloat(rec[4], 64)
		row.Bodies, _ = strconv.Atoi(rec[5])
		row.StepMS, _ = strconv.ParseFloat(rec[6], 64)
		row.TracerX, _ = strconv.ParseFloat(rec[7], 64)
		series = append(series, row)
	}

	return series, nil
}
