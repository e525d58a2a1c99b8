package apps

import (
	"bufio"
	"io"
	"strings"
)

type desktopEntry struct {
	Name      string
	Icon      string
	Type      string
	NoDisplay bool
	Hidden    bool
}

// launchable reports whether the entry describes an application the user
// should see in a picker.
func (e desktopEntry) launchable() bool {
	return e.Type == "Application" && e.Name != "" && !e.NoDisplay && !e.Hidden
}

// parseDesktopEntry reads the fields bindings need from a desktop entry.
// Only the [Desktop Entry] group is scanned; later groups describe
// actions, not the application itself. Localized keys like Name[de] are
// skipped in favor of the unlocalized value.
func parseDesktopEntry(r io.Reader) (desktopEntry, error) {
	var (
		entry   desktopEntry
		inGroup bool
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inGroup = line == "[Desktop Entry]"
			continue
		}
		if !inGroup {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			entry.Name = value
		case "Icon":
			entry.Icon = value
		case "Type":
			entry.Type = value
		case "NoDisplay":
			entry.NoDisplay = value == "true"
		case "Hidden":
			entry.Hidden = value == "true"
		}
	}
	if err := scanner.Err(); err != nil {
		return desktopEntry{}, err
	}
	return entry, nil
}
