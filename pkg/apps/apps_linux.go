//go:build linux

package apps

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// dataDirs returns the XDG data directories in search order, user dirs
// first.
func dataDirs() []string {
	var dirs []string

	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		dirs = append(dirs, dataHome)
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share"))
	}

	dataPath := os.Getenv("XDG_DATA_DIRS")
	if dataPath == "" {
		dataPath = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataPath, ":") {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// List returns the launchable desktop applications visible to the
// session, sorted by name. Directories earlier in the XDG search order
// shadow later ones carrying the same desktop file ID.
func List() ([]Application, error) {
	seen := make(map[string]bool)
	var list []Application

	for _, dir := range dataDirs() {
		appDir := filepath.Join(dir, "applications")
		entries, err := os.ReadDir(appDir)
		if err != nil {
			continue
		}

		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".desktop") {
				continue
			}
			if seen[e.Name()] {
				continue
			}
			seen[e.Name()] = true

			path := filepath.Join(appDir, e.Name())
			f, err := os.Open(path)
			if err != nil {
				continue
			}
			entry, err := parseDesktopEntry(f)
			f.Close()
			if err != nil || !entry.launchable() {
				continue
			}

			list = append(list, Application{
				ID:   uuid.NewString(),
				Name: entry.Name,
				Path: path,
				Icon: entry.Icon,
			})
		}
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
