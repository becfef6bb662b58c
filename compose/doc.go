// Package compose replaces order-sensitive constructor chains with explicit,
// fixed-order feature initialization. The host type's constructor lists one
// Initializer per feature and Init applies them in exactly that order; each
// feature takes its own configuration via closure, so there is no shared
// positional argument list to keep in sync and no implicit resolution order
// to reason about.
package compose
