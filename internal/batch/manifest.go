package batch

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one batch run.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Created time.Time       `json:"created"`
	Seed    uint32          `json:"seed"`
	Frames  []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index    int     `json:"index"`
	AngleDeg float64 `json:"angle_deg"`
	Image    string  `json:"image,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// NewManifest builds a manifest with a fresh run id. Image paths are made
// relative to dir.
func NewManifest(dir string, seed uint32, results []Result) Manifest {
	m := Manifest{
		RunID:   uuid.NewString(),
		Created: time.Now().UTC(),
		Seed:    seed,
		Frames:  make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		e := ManifestEntry{
			Index:    r.Frame.Index,
			AngleDeg: float64(r.Frame.Angle) * 180 / math.Pi,
			Error:    r.Error,
		}
		if r.Success {
			if rel, err := filepath.Rel(dir, r.Path); err == nil {
				e.Image = filepath.ToSlash(rel)
			} else {
				e.Image = r.Path
			}
		}
		m.Frames[i] = e
	}
	return m
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
