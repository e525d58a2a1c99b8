// Package apps enumerates the launchable applications installed on the
// system, for presenting binding choices.
package apps

import "strings"

// Application describes an installed application that can be bound to a
// corner.
type Application struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Icon string `json:"icon,omitempty"`
}

// FindByName returns the first application whose name matches name,
// ignoring case.
func FindByName(list []Application, name string) (Application, bool) {
	for _, app := range list {
		if strings.EqualFold(app.Name, name) {
			return app, true
		}
	}
	return Application{}, false
}
