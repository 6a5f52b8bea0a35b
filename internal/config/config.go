package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/policy"
)

// Config describes host-specific editing policy.
type Config struct {
	// BlockTags adds element names to the block set.
	BlockTags []string `toml:"block_tags"`

	// VoidTags adds element names to the self-closing set.
	VoidTags []string `toml:"void_tags"`

	// UnbreakableTags lists elements that block fragment joins.
	UnbreakableTags []string `toml:"unbreakable_tags"`

	// UnremovableTags lists elements that must survive any deletion.
	UnremovableTags []string `toml:"unremovable_tags"`

	// IsolatedTags lists tag pairs that are unremovable only in
	// isolation: the element goes down with its enclosing structure.
	IsolatedTags []IsolatedTag `toml:"isolated_tags"`

	// PolicyScript is an optional path to a Lua policy script.
	PolicyScript string `toml:"policy_script"`
}

// IsolatedTag pairs an element with the enclosing structure whose
// removal takes the element with it.
type IsolatedTag struct {
	Tag       string `toml:"tag"`
	Enclosing string `toml:"enclosing"`
}

// Default returns the built-in policy: structural table parts are
// unremovable in isolation, nothing else is special.
func Default() Config {
	return Config{
		IsolatedTags: []IsolatedTag{
			{Tag: "td", Enclosing: "table"},
			{Tag: "th", Enclosing: "table"},
			{Tag: "tr", Enclosing: "table"},
		},
	}
}

// Load reads and validates the TOML file at path, applied over the
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	for _, it := range c.IsolatedTags {
		if it.Tag == "" || it.Enclosing == "" {
			return fmt.Errorf("%w: isolated_tags entries need both tag and enclosing", ErrInvalid)
		}
	}
	for _, t := range c.UnremovableTags {
		if t == "" {
			return fmt.Errorf("%w: empty unremovable tag", ErrInvalid)
		}
	}
	return nil
}

// Classifier builds a classifier with the configured tag sets applied
// over the standard HTML defaults.
func (c Config) Classifier() *classify.Classifier {
	return classify.New(
		classify.WithBlockTags(c.BlockTags...),
		classify.WithVoidTags(c.VoidTags...),
		classify.WithUnbreakableTags(c.UnbreakableTags...),
	)
}

// Policy builds a removal policy registry from the configured rules.
// The returned script is non-nil when a Lua policy script was loaded
// and must be closed with the registry.
func (c Config) Policy(cl *classify.Classifier) (*policy.Registry, *policy.Script, error) {
	reg := policy.NewRegistry(cl)
	if len(c.UnremovableTags) > 0 {
		reg.AddRule("config:tags", policy.TagRule(c.UnremovableTags...))
	}
	for _, it := range c.IsolatedTags {
		reg.AddRule("config:isolated:"+it.Tag, policy.IsolatedTagRule(it.Tag, it.Enclosing))
	}
	reg.AddRule("config:attr", policy.AttrRule("data-unremovable"))

	var script *policy.Script
	if c.PolicyScript != "" {
		var err error
		script, err = policy.LoadScript(reg, c.PolicyScript)
		if err != nil {
			return nil, nil, err
		}
	}
	return reg, script, nil
}
