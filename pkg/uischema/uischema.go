// Package uischema applies presentation overlays to built forms. Overlay
// files are small YAML or JSON documents keyed by field name, so labels,
// placeholders and help text can live next to templates instead of the
// schema that produced the form.
package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/forms"
)

// FieldOverlay carries the presentation overrides for one field. Empty values
// leave the field untouched.
type FieldOverlay struct {
	Label       string `yaml:"label" json:"label"`
	Placeholder string `yaml:"placeholder" json:"placeholder"`
	Description string `yaml:"description" json:"description"`
}

// Overlay maps field names to their presentation overrides.
type Overlay struct {
	Fields map[string]FieldOverlay `yaml:"fields" json:"fields"`
}

// metadataTarget is the setter surface every BaseField-backed field exposes.
type metadataTarget interface {
	SetLabel(string)
	SetPlaceholder(string)
	SetDescription(string)
}

// Parse decodes a single overlay document. JSON payloads are detected by the
// file extension; everything else parses as YAML (which accepts JSON too).
func Parse(data []byte, path string) (*Overlay, error) {
	overlay := &Overlay{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, overlay); err != nil {
			return nil, fmt.Errorf("uischema: parse %s: %w", path, err)
		}
		return overlay, nil
	}
	if err := yaml.Unmarshal(data, overlay); err != nil {
		return nil, fmt.Errorf("uischema: parse %s: %w", path, err)
	}
	return overlay, nil
}

// LoadFS walks the filesystem and merges every overlay file found. A field
// declared by two files is an error; when fsys is nil the overlay is empty.
func LoadFS(fsys fs.FS) (*Overlay, error) {
	merged := &Overlay{Fields: make(map[string]FieldOverlay)}
	if fsys == nil {
		return merged, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		overlay, err := Parse(data, path)
		if err != nil {
			return err
		}
		for name, field := range overlay.Fields {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return fmt.Errorf("uischema: file %s declares an empty field name", path)
			}
			if _, exists := merged.Fields[trimmed]; exists {
				return fmt.Errorf("uischema: duplicate field %q (file %s)", trimmed, path)
			}
			merged.Fields[trimmed] = field
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// Apply copies the overlay onto matching form fields. Unknown field names are
// ignored so one overlay can serve several related forms.
func (o *Overlay) Apply(form *forms.Form) {
	if o == nil || form == nil || len(o.Fields) == 0 {
		return
	}
	for name, overlay := range o.Fields {
		field, ok := form.FieldByName(name)
		if !ok {
			continue
		}
		target, ok := field.(metadataTarget)
		if !ok {
			continue
		}
		if overlay.Label != "" {
			target.SetLabel(overlay.Label)
		}
		if overlay.Placeholder != "" {
			target.SetPlaceholder(overlay.Placeholder)
		}
		if overlay.Description != "" {
			target.SetDescription(overlay.Description)
		}
	}
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
