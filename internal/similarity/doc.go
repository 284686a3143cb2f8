// Package similarity scores lexical similarity between normalized company
// names on a 0-100 scale.
//
// A single metric does not hold up across the variation seen in extracted
// names: abbreviations favor whole-string edit distance, truncations favor
// local alignment, and word reorderings favor token comparisons. Score
// therefore computes four metrics and takes the maximum, a recall-biased
// choice that trades extra manual review for fewer false rejects.
package similarity
