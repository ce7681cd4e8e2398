// Package terms owns the term mapping data model.
//
// Ownership boundary:
// - ordered term -> symbol mapping
// - default seed terms
// - admin form sanitization
package terms
