// Package source reads raw recording data from the at-rest corpus.
//
// It provides path resolution over the corpus directory layout and one parser
// per native format: delimited CSV (upper injection molding cycles and the
// shared static-attribute indexes), delimited TXT with a "-start data-"
// marker (lower injection molding cycles) and JSON with tightening steps
// (screw driving runs). Every parser returns the same uniform in-memory
// shape: named scalar attributes and named numeric series.
package source
