// Package substitute annotates configured terms in text with their symbol.
//
// Every whole-word, case-insensitive occurrence of a term is replaced by the
// term as configured followed by its decoded symbol. Longer terms are
// processed first. Each match is first swapped for an opaque
// ##PLACEHOLDER_<n>## token (tagging) and the tokens are only expanded once
// every term has been processed (resolution), so neither a shorter term nor
// an inserted symbol can be matched against text another term already
// consumed.
//
// Case-insensitive matching uses Unicode simple case folding, the rule of
// regexp's (?i) flag: the Kelvin sign U+212A matches k and the long s U+017F
// matches s. Word boundaries are still ASCII only.
package substitute
