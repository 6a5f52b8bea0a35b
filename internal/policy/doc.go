// Package policy holds the pluggable removal policy consumed by the
// deletion engine: an ordered set of unremovable predicates registered
// by independent feature modules (any match wins), optional
// descendants-to-remove hooks for composite widgets with non-standard
// internal structure, and the derived unmergeable test.
//
// Host products can also contribute rules from Lua scripts; see
// LoadScript.
package policy
