package metrics

import "time"

// ResultLabel enumerates assembly outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for descriptor assembly. Implementations
// may forward to Prometheus or anything else.
type Recorder interface {
	ObserveAssemblyDuration(target string, d time.Duration)
	IncAssemblyOutcome(target string, result ResultLabel)
	SetDescriptorSize(target string, rules, plugins int)
	IncReload(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveAssemblyDuration(string, time.Duration) {}
func (NoopRecorder) IncAssemblyOutcome(string, ResultLabel)        {}
func (NoopRecorder) SetDescriptorSize(string, int, int)            {}
func (NoopRecorder) IncReload(ResultLabel)                         {}

// Outcome maps an error to its result label.
func Outcome(err error) ResultLabel {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}
