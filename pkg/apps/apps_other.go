//go:build !linux && !darwin && !windows

package apps

// List returns no applications on platforms without an enumerator.
func List() ([]Application, error) {
	return nil, nil
}
