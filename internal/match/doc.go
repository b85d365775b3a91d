// Package match scores how closely two JVM member names resemble each other
// and ranks candidates, for suggesting likely counterparts of members a
// merge could not pair.
//
// Key functions:
//   - Normalize: folds a member or class name for fuzzy comparison
//   - Distance: edit distance between two strings
//   - DescriptorCompatibility: scores how alike two method descriptors are
//   - Rank: ranks candidate members against a target
package match
