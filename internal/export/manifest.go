package export

import (
	"encoding/json"
	"fmt"
)

// Manifest is an Xcode asset-catalog Contents.json.
type Manifest struct {
	Path   string          `json:"-"` // relative to the project root
	Images []ManifestImage `json:"images"`
	Info   ManifestInfo    `json:"info"`
}

type ManifestImage struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
}

type ManifestInfo struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

// JSON renders the manifest the way Xcode writes it: two-space indent and
// a trailing newline. A zero Info is filled with the Xcode defaults.
func (m *Manifest) JSON() ([]byte, error) {
	out := *m
	if out.Info == (ManifestInfo{}) {
		out.Info = ManifestInfo{Author: "xcode", Version: 1}
	}
	if out.Images == nil {
		out.Images = []ManifestImage{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode %s: %w", m.Path, err)
	}
	return append(data, '\n'), nil
}
