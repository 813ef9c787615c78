package media

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

var logoExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
}

// Logo is one selectable image of the logos directory.
type Logo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Logos lists image files of the logos directory sorted by name. A missing
// directory yields an empty list.
func (s *Store) Logos() ([]Logo, error) {
	entries, err := fs.ReadDir(s.root.FS(), KindLogos)
	if errors.Is(err, fs.ErrNotExist) {
		return []Logo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read logos: %w", err)
	}

	logos := make([]Logo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !logoExts[strings.ToLower(path.Ext(e.Name()))] {
			continue
		}
		logos = append(logos, Logo{
			Name: strings.TrimSuffix(e.Name(), path.Ext(e.Name())),
			Path: path.Join(KindLogos, e.Name()),
		})
	}
	slices.SortFunc(logos, func(a, b Logo) int { return strings.Compare(a.Path, b.Path) })
	return logos, nil
}
