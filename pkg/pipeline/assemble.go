package pipeline

import "github.com/blockforge/chunkgen/pkg/config"

// Assemble builds a Pipeline from a PipelineConfig: it parses every
// selector string, looks up the named concrete stage in the registry,
// and wires cross-stage dependencies (the height generator gets the
// biome generator, the composition generator gets both). An unknown
// selector aborts assembly with an *InvalidConfigError; the caller
// (generator.New) returns that to its own caller rather than
// retrying or falling back to a default.
func Assemble(cfg config.PipelineConfig) (*Pipeline, error) {
	biomeName, biomeArg := config.Selector(cfg.BiomeGen)
	biomeFactory, ok := lookupBiomeGen(biomeName)
	if !ok {
		return nil, &InvalidConfigError{Field: "biome_gen", Selector: cfg.BiomeGen, Reason: "unknown selector"}
	}
	biome, err := biomeFactory(cfg.Seed, biomeArg)
	if err != nil {
		return nil, &InvalidConfigError{Field: "biome_gen", Selector: cfg.BiomeGen, Reason: err.Error()}
	}

	heightName, heightArg := config.Selector(cfg.HeightGen)
	heightFactory, ok := lookupTerrainHeightGen(heightName)
	if !ok {
		return nil, &InvalidConfigError{Field: "height_gen", Selector: cfg.HeightGen, Reason: "unknown selector"}
	}
	height, err := heightFactory(cfg.Seed, heightArg, biome)
	if err != nil {
		return nil, &InvalidConfigError{Field: "height_gen", Selector: cfg.HeightGen, Reason: err.Error()}
	}

	compName, compArg := config.Selector(cfg.CompositionGen)
	compFactory, ok := lookupCompositionGen(compName)
	if !ok {
		return nil, &InvalidConfigError{Field: "composition_gen", Selector: cfg.CompositionGen, Reason: "unknown selector"}
	}
	composition, err := compFactory(cfg.Seed, compArg, biome, height)
	if err != nil {
		return nil, &InvalidConfigError{Field: "composition_gen", Selector: cfg.CompositionGen, Reason: err.Error()}
	}

	structures := make([]namedStructureGen, 0, len(cfg.Structures))
	for _, sel := range cfg.Structures {
		name, arg := config.Selector(sel)
		factory, ok := lookupStructureGen(name)
		if !ok {
			return nil, &InvalidConfigError{Field: "structures", Selector: sel, Reason: "unknown selector"}
		}
		gen, err := factory(cfg.Seed, arg, biome, height)
		if err != nil {
			return nil, &InvalidConfigError{Field: "structures", Selector: sel, Reason: err.Error()}
		}
		structures = append(structures, namedStructureGen{name: name, gen: gen})
	}

	finishers := make([]namedFinishGen, 0, len(cfg.Finishers))
	for _, sel := range cfg.Finishers {
		name, arg := config.Selector(sel)
		factory, ok := lookupFinishGen(name)
		if !ok {
			return nil, &InvalidConfigError{Field: "finishers", Selector: sel, Reason: "unknown selector"}
		}
		gen, err := factory(cfg.Seed, arg, biome, height)
		if err != nil {
			return nil, &InvalidConfigError{Field: "finishers", Selector: sel, Reason: err.Error()}
		}
		finishers = append(finishers, namedFinishGen{name: name, gen: gen})
	}

	return &Pipeline{
		seed:        cfg.Seed,
		biome:       biome,
		height:      height,
		composition: composition,
		structures:  structures,
		finishers:   finishers,
	}, nil
}
