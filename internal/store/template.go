package store

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed template/sights.json
var defaultTemplate []byte

// LoadTemplate returns the bytes the document is seeded from: the file at
// path when set, the bundled template otherwise.
func LoadTemplate(path string) ([]byte, error) {
	if path == "" {
		return defaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read template: %w", err)
	}
	return data, nil
}
