// Package render passes page text through the substitution engine.
//
// A Pass is one rendering operation: it loads the term mapping at most once
// and runs every text-bearing field of a page through the same mapping.
package render
