// Package metrics exposes Prometheus instrumentation for the recommendation service.
//
// Collectors are registered on the default registry at init through promauto and
// served by the HTTP layer at /metrics. Record* helpers keep label values consistent
// across callers.
package metrics
