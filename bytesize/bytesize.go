// Package bytesize converts and formats byte counts. It is a capability
// bundle: free functions over the Sized accessor contract, so any type that
// exposes SizeBytes gains the conversions without embedding and without
// assumptions about the host's field layout.
package bytesize

import "fmt"

// Sized is the accessor contract a host type exposes to gain size helpers.
type Sized interface {
	SizeBytes() int64
}

const (
	bytesPerKB = 1 << 10
	bytesPerMB = 1 << 20
)

// ToMB converts a byte count to megabytes.
func ToMB(bytes int64) float64 { return float64(bytes) / bytesPerMB }

// ToKB converts a byte count to kilobytes.
func ToKB(bytes int64) float64 { return float64(bytes) / bytesPerKB }

// FromKB converts kilobytes to a byte count, truncating fractional bytes.
func FromKB(kb float64) int64 { return int64(kb * bytesPerKB) }

// MB returns the host's size in megabytes.
func MB(s Sized) float64 { return ToMB(s.SizeBytes()) }

// KB returns the host's size in kilobytes.
func KB(s Sized) float64 { return ToKB(s.SizeBytes()) }

// Format renders a byte count with the most readable unit.
func Format(bytes int64) string {
	switch {
	case bytes < bytesPerKB:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < bytesPerMB:
		return fmt.Sprintf("%.1f KB", ToKB(bytes))
	default:
		return fmt.Sprintf("%.1f MB", ToMB(bytes))
	}
}

// FormatSized renders the host's size with the most readable unit.
func FormatSized(s Sized) string { return Format(s.SizeBytes()) }
