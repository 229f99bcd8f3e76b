package export

import (
	"os"
	"path/filepath"
	"strings"
)

// listByExt returns the paths of regular files in dir whose extension
// matches ext, in name order. ReadDir already sorts by name.
func listByExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
