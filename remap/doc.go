// Package remap answers renaming queries the way a bytecode remapper asks
// them: by owner class, member name and raw descriptor.
//
// Member lookups complete the owner class against an inheritance provider
// first, so a method declared and mapped on a superclass is renamed when it
// is referenced through a subclass.
package remap
