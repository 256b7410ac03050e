package overlay

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load walks dir inside fsys and parses every overlay document it finds.
// Documents are keyed by the entity kind they declare; a kind declared twice
// is an error because merge order would be load order, which is filesystem
// dependent. When fsys is nil the returned map is empty.
func Load(fsys fs.FS, dir string) (map[string]Overlay, error) {
	out := map[string]Overlay{}
	if fsys == nil {
		return out, nil
	}
	if dir == "" {
		dir = "."
	}

	err := fs.WalkDir(fsys, dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("overlay: read %s: %w", path, err)
		}

		ov, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		kind := strings.ToLower(strings.TrimSpace(ov.Entity))
		if kind == "" {
			return fmt.Errorf("overlay: file %s declares no entity", path)
		}
		if _, exists := out[kind]; exists {
			return fmt.Errorf("overlay: duplicate entity %q (file %s)", kind, path)
		}
		for idx, patch := range ov.Fields {
			if strings.TrimSpace(patch.Label) == "" {
				return fmt.Errorf("overlay: file %s patch %d has no label", path, idx)
			}
		}
		out[kind] = ov
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func parseDocument(data []byte, source string) (Overlay, error) {
	var ov Overlay
	if len(strings.TrimSpace(string(data))) == 0 {
		return Overlay{}, fmt.Errorf("overlay: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &ov); err == nil {
		return ov, nil
	}
	ov = Overlay{}
	if err := yaml.Unmarshal(data, &ov); err == nil {
		return ov, nil
	}

	return Overlay{}, fmt.Errorf("overlay: parse %s: invalid JSON or YAML", source)
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
