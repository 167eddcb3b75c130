// Package ovr expands multi-class label streams into one-vs-rest binary label
// streams, one per class, and writes them for every split.
//
// For a class c, the binary stream has the same length and order as the source
// labels and holds "1" exactly where the source label equals c, "0" elsewhere.
package ovr
