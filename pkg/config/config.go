// Package config parses the chunk generator's PipelineConfig from the
// key/value view the owning world hands the generator, and — for
// tooling and tests — from a YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PipelineConfig is the recognized configuration surface for assembling
// a Pipeline: a biome generator selector, a height generator selector,
// a composition generator selector, an ordered list of structure
// generator selectors, an ordered list of finisher selectors, and the
// world seed. Selectors are case-insensitive; lists are comma-separated
// and whitespace-trimmed.
type PipelineConfig struct {
	BiomeGen       string   `yaml:"biome_gen"`
	HeightGen      string   `yaml:"height_gen"`
	CompositionGen string   `yaml:"composition_gen"`
	Structures     []string `yaml:"structures"`
	Finishers      []string `yaml:"finishers"`
	Seed           int32    `yaml:"seed"`
}

// View is the parsed key/value section of the world's configuration
// file the generator receives at Start. Values are read verbatim;
// FromView does the list-splitting, and Selector lower-cases selector
// names when the pipeline is assembled.
type View map[string]string

// FromView builds a PipelineConfig from a raw key/value view, honoring
// the recognized keys named in the generator's public contract:
// biome_gen, height_gen, composition_gen, structures, finishers, seed.
// Unknown keys are ignored; a missing seed defaults to 0.
func FromView(v View) (PipelineConfig, error) {
	cfg := PipelineConfig{
		BiomeGen:       v["biome_gen"],
		HeightGen:      v["height_gen"],
		CompositionGen: v["composition_gen"],
		Structures:     splitList(v["structures"]),
		Finishers:      splitList(v["finishers"]),
	}

	if raw, ok := v["seed"]; ok && raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return PipelineConfig{}, fmt.Errorf("config: parsing seed %q: %w", raw, err)
		}
		cfg.Seed = int32(seed)
	}

	return cfg, nil
}

// splitList parses a comma-separated, whitespace-trimmed list, dropping
// empty elements so "a, ,b" yields ["a", "b"].
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads and parses a YAML PipelineConfig file, for the demo CLI
// and for tests that want a config fixture on disk rather than an
// in-memory View.
func Load(path string) (PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PipelineConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PipelineConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Selector splits a "Name:arg" selector string into its registry name
// and optional argument. Names are matched case-insensitively; the
// returned name is lower-cased, the argument keeps its case. Both are
// whitespace-trimmed.
func Selector(raw string) (name, arg string) {
	name = raw
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		name, arg = raw[:idx], raw[idx+1:]
	}
	return strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(arg)
}
