package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/arcanaland/proxyprint/internal/fault"
)

// Manifest is the upstream list of downloadable bulk datasets.
type Manifest struct {
	Data []Dataset `json:"data"`
}

// Dataset is one bulk dataset entry of the manifest.
type Dataset struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	DownloadURI string    `json:"download_uri"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ParseManifest decodes a raw manifest document.
func ParseManifest(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fault.Wrap(fault.CodeMalformed, "decode bulk data manifest", err)
	}
	return &m, nil
}

// Select returns the dataset whose name is want, or whose type is the
// snake_case form of want ("Oracle Cards" also matches type "oracle_cards").
func (m *Manifest) Select(want string) (Dataset, error) {
	wantType := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(want)), " ", "_")
	for _, d := range m.Data {
		if d.Name == want || (d.Type != "" && d.Type == wantType) {
			if d.DownloadURI == "" {
				return Dataset{}, fault.New(fault.CodeIncompleteDataset,
					fmt.Sprintf("bulk dataset %q has no download_uri", want))
			}
			return d, nil
		}
	}
	return Dataset{}, fault.New(fault.CodeIncompleteDataset,
		fmt.Sprintf("bulk data response did not include required dataset %q", want))
}
