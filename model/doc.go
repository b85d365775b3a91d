// Package model holds the renaming model: a MappingSet of class mappings,
// each carrying field, method and inner class mappings, with method parameter
// mappings below methods.
//
// Names that depend on other nodes are derived on every read:
//   - the full name of an inner class is its parent's full name, "$", and its own name
//   - the de-obfuscated descriptor of a method is its obfuscated descriptor with
//     every class name translated through the owning set
//
// so renaming a class is immediately visible from every descendant and from
// every descriptor that mentions it.
//
// The tree is not synchronised below the top-level class index: a single
// writer per top-level class is expected. Two exceptions are safe for
// concurrent use: registering top-level classes, and completing a class
// against an InheritanceProvider (serialised per class).
package model
