/*
Package observability provides tools for monitoring machine runs.

Metrics exposes Prometheus counters and histograms fed by domain.LifecycleHooks, so any
runner configured with Metrics.Hooks reports runs, steps and outcomes without the tape
engine knowing about it.

SetupTracing installs a global OpenTelemetry provider; runners create one span per run
on it.
*/
package observability
