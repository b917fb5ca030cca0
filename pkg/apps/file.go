package apps

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// registryFile is the on-disk YAML layout of a registry definition.
type registryFile struct {
	Apps []Descriptor `yaml:"apps"`
}

// LoadFile reads a YAML registry definition from path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a YAML registry definition from r.
func Decode(r io.Reader) (*Registry, error) {
	var file registryFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return NewRegistry(file.Apps...)
}

// Encode writes the registry to w as YAML, in the layout Decode reads.
func (r *Registry) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(registryFile{Apps: r.Descriptors()}); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
