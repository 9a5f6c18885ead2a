// Package textproc normalizes README text for the output dataset.
//
// The pipeline is strictly ordered: lowercase, strip HTML markup keeping
// only visible text, tokenize into words (UAX#29 segmentation), remove
// tokens in a fixed English stopword set, reduce each remaining token by
// stemming or lemmatization, and join the result with single spaces.
//
// Design decision: We lean on existing libraries for every linguistic
// step rather than hand-rolling heuristics:
//  1. golang.org/x/net/html correctly handles malformed markup
//  2. clipperhouse/uax29 implements Unicode word segmentation properly
//  3. kljensen/snowball and aaaton/golem are established reducers
//
// Only the stopword set is carried inline: it is a fixed data table, and
// pinning it keeps normalization output stable across dependency upgrades.
package textproc
