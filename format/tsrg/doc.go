// Package tsrg reads and writes mapping sets in the TSRG text format.
//
// A TSRG file lists one class per unindented line followed by its members
// on tab-indented lines:
//
//	a/b/C com/example/Widget
//		f count
//		m (La/b/C;)V attach
//
// Fields carry no type, methods carry their obfuscated descriptor. Blank
// lines and text after '#' are ignored, and package lines ending in '/' are
// skipped.
package tsrg
