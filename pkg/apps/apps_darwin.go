//go:build darwin

package apps

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// List returns the application bundles under the standard application
// folders, sorted by name.
func List() ([]Application, error) {
	dirs := []string{"/Applications", "/System/Applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Applications"))
	}

	seen := make(map[string]bool)
	var list []Application

	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() || !strings.HasSuffix(d.Name(), ".app") {
				return nil
			}
			// Do not descend into bundles; helpers inside them are not
			// user-facing applications.
			if !seen[d.Name()] {
				seen[d.Name()] = true
				list = append(list, Application{
					ID:   uuid.NewString(),
					Name: strings.TrimSuffix(d.Name(), ".app"),
					Path: path,
				})
			}
			return fs.SkipDir
		})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
