// Package descriptor parses, renders and rewrites JVM type descriptors.
//
// A descriptor is the encoded form of a field type ("I", "Ljava/lang/String;",
// "[[J") or of a method's parameter and return types ("(ILjava/lang/Object;)V").
// Parsed values are immutable; substitution builds new values only along the
// paths where a class name actually changed and hands back the original
// value otherwise, so callers can compare results by identity.
package descriptor
