// Package diagnostic provides structured warnings, errors and informational
// notes produced while merging or applying mappings.
//
// Key capabilities:
//   - Loose matches that had to pick between several right-side overloads
//   - Members that were dropped by a custom merge handler
//   - Per-class and per-member location of every message
package diagnostic
