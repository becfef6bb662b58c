// Package conf provides an immutable key/value configuration manager parsed
// from a YAML file, plus a Shared accessor that keeps exactly one Manager per
// file path via singlet. Use Load for an owned Manager; use Shared when many
// callers should pay for a single parse.
package conf
