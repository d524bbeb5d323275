package musial

import (
	"os/user"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ExpandHome expands a leading ~/ to the current user's home directory. Other
// paths, including gs:// paths, are returned unchanged.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	usr, err := user.Current()
	if err != nil {
		log.Warnf("could not expand %s: %v", path, err)
		return path
	}

	return filepath.Join(usr.HomeDir, path[2:])
}
