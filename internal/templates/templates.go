// Package templates embeds the static workspace files written by the
// scaffolder. The files are literal; no interpolation happens at write time,
// which keeps every run byte-identical.
package templates

import (
	"embed"
	"fmt"
)

//go:embed files
var content embed.FS

// Read returns the template with the given name.
func Read(name string) ([]byte, error) {
	data, err := content.ReadFile("files/" + name)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return data, nil
}
