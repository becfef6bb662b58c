// Package singlet provides lazy construct-once singleton management: a
// Registry mapping comparable keys to exactly one instance each, and a Lazy
// cell for a single value. Construction happens at most once per key even
// under concurrent demand; a failed construction is never cached, so a later
// call can retry.
package singlet
