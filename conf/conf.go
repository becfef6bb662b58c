package conf

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skosovsky/singlet"
)

// Sentinel errors for configuration loading.
// Callers should use errors.Is to check.
var (
	// ErrInvalidFile indicates the file exists but is not valid YAML mapping.
	ErrInvalidFile = errors.New("conf: config file is malformed")
)

// Manager holds settings parsed once from a YAML file. It never mutates
// after Load, so sharing one Manager across goroutines needs no locking.
type Manager struct {
	path   string
	values map[string]any
}

// Load parses the top-level YAML mapping at path into a Manager.
func Load(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFile, path, err)
	}
	return &Manager{path: path, values: values}, nil
}

// Shared returns the one Manager for path held by reg, loading the file on
// the first call only. Concurrent callers for the same path share a single
// parse; distinct paths get distinct Managers.
func Shared(ctx context.Context, reg *singlet.Registry, path string) (*Manager, error) {
	return singlet.Get(ctx, reg, singlet.NamedKeyOf[Manager](path), func(context.Context) (*Manager, error) {
		return Load(path)
	})
}

// Path returns the file the Manager was loaded from.
func (m *Manager) Path() string { return m.path }

// Len returns the number of top-level settings.
func (m *Manager) Len() int { return len(m.values) }

// Value returns the raw value for a top-level key.
func (m *Manager) Value(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// String returns the value for key as a string.
func (m *Manager) String(key string) (string, bool) {
	v, ok := m.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int returns the value for key as an int. YAML decodes numbers as int or
// float64 depending on their form; whole floats coerce.
func (m *Manager) Int(key string) (int, bool) {
	v, ok := m.values[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Bool returns the value for key as a bool.
func (m *Manager) Bool(key string) (bool, bool) {
	v, ok := m.values[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
