package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/heatmap/schema"
)

// DiscoverInput returns the only regular, non-hidden file inside dir.
// Any other situation is reported as an InputError with Discovery set.
func DiscoverInput(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &schema.InputError{Path: dir, Discovery: true, Reason: "cannot read data directory", Err: err}
	}

	var candidates []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, entry.Name()))
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return "", &schema.InputError{Path: dir, Discovery: true, Reason: "no input file found"}
	default:
		return "", &schema.InputError{Path: dir, Discovery: true, Reason: fmt.Sprintf("found %d candidate files, expected exactly one", len(candidates))}
	}
}
