package pipeline

import "fmt"

// InvalidConfigError reports a PipelineConfig that could not be turned
// into a runnable Pipeline: an unknown selector or a contradictory
// option. It is fatal to Assemble and is returned to the caller, never
// recovered from internally.
type InvalidConfigError struct {
	Field    string // the PipelineConfig key involved, e.g. "biome_gen"
	Selector string // the offending selector string
	Reason   string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("pipeline: invalid config %s=%q: %s", e.Field, e.Selector, e.Reason)
}

// StageFaultError reports that a stage failed to produce output for one
// chunk. The caller (the worker) logs it and abandons only that chunk;
// it never corrupts pipeline or queue state.
type StageFaultError struct {
	Stage string
	Cx    int32
	Cz    int32
	Err   error
}

func (e *StageFaultError) Error() string {
	return fmt.Sprintf("pipeline: stage %s faulted for chunk (%d, %d): %v", e.Stage, e.Cx, e.Cz, e.Err)
}

func (e *StageFaultError) Unwrap() error {
	return e.Err
}
