// Package merge composes two mapping sets.
//
// Given a left set mapping A to B and a right set mapping B to C, Merge
// produces a new set mapping A to C. For every left class the right set is
// searched for the class the left class is renamed to (its continuation) and
// for a class with the same obfuscated name (a duplicate, for right sets
// written against A). Members are matched the same way, either by exact
// signature (Strict) or by name and arity (Loose). Left nodes without a match
// pass through unchanged; right nodes that no left node consumed are added,
// with their descriptors translated from B back to A through the reversed
// left set.
//
// Every decision is delegated to a Handler. DefaultHandler implements the
// behaviour above; custom handlers embed it and override single kinds.
//
// Top-level classes may be merged concurrently (Config.Parallelism). Each
// top-level result tree is written by exactly one goroutine.
package merge
