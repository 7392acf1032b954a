// Package monitor provides the business boundary for statuswatch's incident
// pipeline. It defines the canonical Incident model, the Store interface
// (dedup + latest-by-id persistence), the output formatter, and the Service
// that ties normalization, acceptance, and emission together.
package monitor
