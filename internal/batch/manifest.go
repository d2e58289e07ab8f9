package batch

import (
	"encoding/json"
	"os"
)

// Manifest describes one chapter run.
type Manifest struct {
	SeriesID  string          `json:"series_id"`
	ChapterID string          `json:"chapter_id"`
	Pages     []ManifestEntry `json:"pages"`
}

// ManifestEntry represents one page in the output manifest.
type ManifestEntry struct {
	Index  int    `json:"index"`
	Source string `json:"source"`
	Image  string `json:"image,omitempty"`
	Format string `json:"format,omitempty"`
	Bytes  int    `json:"bytes,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing results.
func WriteManifest(path string, cfg Config, results []Result) error {
	m := Manifest{
		SeriesID:  cfg.SeriesID,
		ChapterID: cfg.ChapterID,
		Pages:     make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		m.Pages[i] = ManifestEntry{
			Index:  r.Index,
			Source: r.Source,
			Image:  r.Output,
			Format: r.Format,
			Bytes:  r.Bytes,
			Error:  r.Error,
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(data, &m)
	return m, err
}
