// Package corpus loads and filters the co-authored document collection.
//
// A Corpus is read once from a CSV or XLSX file and is never mutated
// afterwards, so every time window can filter it without
// locking. Author lists are stored in the source as bracketed, quoted literal
// lists; ParseAuthorList implements that grammar directly and never evaluates
// its input.
//
// Category filtering uses Selection, which is either Unfiltered or restricted
// to an explicit set of category codes.
package corpus
