package screen

// Provider is the interface that all cursor/display query implementations
// must satisfy.
type Provider interface {
	// CursorPosition returns the current global cursor position.
	// Returns an error if the position cannot be determined.
	CursorPosition() (Point, error)

	// Displays returns the bounds of every connected display. The primary
	// display comes first; the slice order is stable between calls while
	// the layout is unchanged.
	Displays() ([]Display, error)

	// IsAvailable returns true if this provider can work in the current
	// environment.
	IsAvailable() bool

	// PlatformName returns the name of the platform this provider serves
	// (e.g. "x11", "darwin", "windows").
	PlatformName() string

	// Close releases any resources held by the provider.
	Close() error
}

// PermissionGate reports whether the process is allowed to observe the
// global cursor position.
type PermissionGate interface {
	// CheckPermission returns true when cursor access is granted. When
	// prompt is true and access is missing, the platform's permission
	// dialog is raised; when prompt is false the check is silent.
	CheckPermission(prompt bool) bool
}

// Launcher starts applications on behalf of the user.
type Launcher interface {
	// Launch opens the application at the given path. It returns once the
	// launch has been handed to the OS; it does not wait for the
	// application to exit.
	Launch(path string) error
}

// Backend bundles the platform capabilities the trigger engine needs.
type Backend interface {
	Provider
	PermissionGate
	Launcher
}
