// Package config loads the deletion engine's policy configuration
// from a TOML file: tag-set overrides for the classifier, unremovable
// tag lists for the removal policy, and an optional Lua policy script.
// A watcher provides live reload of the file.
package config
