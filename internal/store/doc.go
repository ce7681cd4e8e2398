// Package store persists the term mapping.
//
// Ownership boundary:
// - Store contract (load / save of a whole mapping)
// - memory, file (TOML/YAML), and sqlite backends
// - load caching and invalidation
// - first-run activation with the default terms
package store
