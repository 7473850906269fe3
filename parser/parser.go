package parser

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a user supplied path such as the --config flag.
// Environment variables ($XDG_CONFIG_HOME, ${HOME}) are substituted first,
// then a leading "~" or "~/" becomes the user's home directory.
// Anything else is returned cleaned but otherwise unchanged.
func ExpandPath(path string) (string, error) {
	path = os.ExpandEnv(path)

	switch {
	case path == "":
		return "", nil
	case path == "~":
		return os.UserHomeDir()
	case strings.HasPrefix(path, "~/"):
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return filepath.Clean(path), nil
}
