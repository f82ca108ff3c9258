// Package storage persists solved droplet shapes as runs under a base
// directory, one directory per run with JSON metadata and a CSV profile.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/dropsim/internal/laplace"
	"github.com/san-kum/dropsim/internal/shoot"
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
	ID              string             `json:"id"`
	Timestamp       time.Time          `json:"timestamp"`
	Fluid           string             `json:"fluid"`
	TargetKind      string             `json:"target_kind"`
	TargetValue     float64            `json:"target_value"`
	ContactAngleDeg float64            `json:"contact_angle_deg"`
	ApexRadius      float64            `json:"apex_radius_m"`
	Bond            float64            `json:"bond"`
	Residual        float64            `json:"residual"`
	Iterations      int                `json:"iterations"`
	Volume          float64            `json:"volume_m3"`
	SurfaceArea     float64            `json:"surface_area_m2"`
	Height          float64            `json:"height_m"`
	MaxRadius       float64            `json:"max_radius_m"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
}

// Save writes the run directory and returns its ID.
func (s *Store) Save(fluidName, targetKind string, targetValue float64, sol *shoot.Solution) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", fluidName, targetKind, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:              runID,
		Timestamp:       time.Now(),
		Fluid:           fluidName,
		TargetKind:      targetKind,
		TargetValue:     targetValue,
		ContactAngleDeg: sol.ContactAngle * 180 / math.Pi,
		ApexRadius:      sol.ApexRadius,
		Bond:            sol.Bond,
		Residual:        sol.Residual,
		Iterations:      sol.Iterations,
		Volume:          sol.Volume(),
		SurfaceArea:     sol.SurfaceArea(),
		Height:          sol.Height(),
		MaxRadius:       sol.MaxRadius(),
		Metrics:         sol.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "profile.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"s", "r", "z", "phi"}); err != nil {
		return "", err
	}
	for _, p := range sol.Profile {
		row := []string{
			strconv.FormatFloat(p.S, 'g', 17, 64),
			strconv.FormatFloat(p.R, 'g', 17, 64),
			strconv.FormatFloat(p.Z, 'g', 17, 64),
			strconv.FormatFloat(p.Phi, 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return runID, w.Error()
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

// LoadProfile reads the discretized profile back from a run directory.
func (s *Store) LoadProfile(runID string) ([]laplace.ProfilePoint, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "profile.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []laplace.ProfilePoint{}, nil
	}

	prof := make([]laplace.ProfilePoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 4 {
			return nil, fmt.Errorf("storage: malformed profile row with %d fields", len(rec))
		}
		vals := make([]float64, 4)
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: bad profile value %q: %w", field, err)
			}
			vals[i] = v
		}
		prof = append(prof, laplace.ProfilePoint{S: vals[0], R: vals[1], Z: vals[2], Phi: vals[3]})
	}

	return prof, nil
}
