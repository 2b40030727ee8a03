// Package metrics provides observability hooks for descriptor assembly.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites never nil-check:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	asm := pack.New(cfg, pack.WithRecorder(recorder))
//
// The watch command is the only place a PrometheusRecorder is activated; it
// serves the registry through HTTPHandler.
package metrics
