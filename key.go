package singlet

import (
	"reflect"
	"sync"
)

// Key identifies which singleton is being requested. Equal keys always resolve
// to the same instance; distinct keys never share one.
//
// Precondition, not a runtime check: a key must be stable and comparable
// across calls for the same logical singleton. Deriving keys from unstable
// values (e.g. formatted pointers) is a caller bug with undefined behavior.
type Key struct {
	Type string // type identity, e.g. "conf.Manager"; empty for plain string keys
	Name string // instance qualifier within Type, or the registered string key
}

// StringKey returns a Key for a registered string name, e.g. StringKey("config").
func StringKey(name string) Key { return Key{Name: name} }

// KeyOf returns the Key for type T, derived from its reflected type name.
// All requests for KeyOf[T]() resolve to one shared instance of T.
func KeyOf[T any]() Key { return Key{Type: typeName[T]()} }

// NamedKeyOf returns a Key for a named instance of type T, so several
// independent singletons of the same type can coexist (e.g. one conf.Manager
// per file path).
func NamedKeyOf[T any](name string) Key { return Key{Type: typeName[T](), Name: name} }

// IsZero reports whether the key is empty.
func (k Key) IsZero() bool { return k.Type == "" && k.Name == "" }

// String returns a human-readable "type/name", omitting the empty side.
func (k Key) String() string {
	switch {
	case k.Type == "":
		return k.Name
	case k.Name == "":
		return k.Type
	default:
		return k.Type + "/" + k.Name
	}
}

// flightKey returns an unambiguous string form for call coalescing.
// StringKey("x") and KeyOf[x]() must never join the same flight, so the
// separator is a byte that cannot appear in a type name.
func (k Key) flightKey() string { return k.Type + "\x00" + k.Name }

var (
	// typeNames caches reflected type names so repeated KeyOf calls avoid
	// re-running reflection.
	typeNames   = make(map[reflect.Type]string)
	typeNamesMu sync.RWMutex
)

// typeName returns the cached string form of T's type. Goes through a pointer
// so interface and pointer type parameters resolve without a non-nil value.
func typeName[T any]() string {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	typeNamesMu.RLock()
	name, ok := typeNames[typ]
	typeNamesMu.RUnlock()
	if ok {
		return name
	}

	typeNamesMu.Lock()
	defer typeNamesMu.Unlock()
	if name, ok := typeNames[typ]; ok {
		return name
	}
	name = typ.String()
	typeNames[typ] = name
	return name
}
