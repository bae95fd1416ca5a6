package host

import (
	"slices"
)

// Platform is how the host application is found and relaunched on one operating system.
type Platform struct {
	// ProcessName is matched (case-insensitively) against running process names.
	ProcessName string

	// Launch starts the host application again after it has been stopped.
	Launch []string
}

// platforms is keyed by GOOS.
var platforms = map[string]Platform{
	"darwin": {
		ProcessName: "Claude",
		Launch:      []string{"open", "-a", "Claude"},
	},
	"windows": {
		ProcessName: "Claude.exe",
		Launch:      []string{"cmd", "/C", "start", "", "Claude.exe"},
	},
	"linux": {
		ProcessName: "claude-desktop",
		Launch:      []string{"claude-desktop"},
	},
}

// PlatformFor returns the Platform for goos, if the host application is supported there.
func PlatformFor(goos string) (Platform, bool) {
	p, ok := platforms[goos]
	if !ok {
		return Platform{}, false
	}

	p.Launch = slices.Clone(p.Launch)

	return p, true
}
