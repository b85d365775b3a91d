package common

import "strings"

// UnknownStr is the placeholder printed for values outside an enum's range.
const UnknownStr = "unknown"

const (
	// PackageSeparator separates package segments of a binary name.
	PackageSeparator = "/"
	// InnerSeparator joins an outer class name and an inner class name.
	InnerSeparator = "$"
	// ObjectClass is the root of every class hierarchy.
	ObjectClass = "java/lang/Object"
)

// SplitPackage splits a binary name such as "foo/bar/Baz" into its package
// ("foo/bar") and simple name ("Baz"). The package is empty for the default package.
func SplitPackage(binaryName string) (pkg, simple string) {
	idx := strings.LastIndex(binaryName, PackageSeparator)
	if idx < 0 {
		return "", binaryName
	}

	return binaryName[:idx], binaryName[idx+1:]
}

// PackageOf returns the package part of a binary name.
func PackageOf(binaryName string) string {
	pkg, _ := SplitPackage(binaryName)
	return pkg
}

// SplitInner splits a full class name on the inner class separator:
// "a/B$C$1" becomes ["a/B", "C", "1"].
func SplitInner(fullName string) []string {
	return strings.Split(fullName, InnerSeparator)
}

// LastInner returns the segment after the last inner class separator,
// or the whole name when it has none.
func LastInner(fullName string) string {
	idx := strings.LastIndex(fullName, InnerSeparator)
	if idx < 0 {
		return fullName
	}

	return fullName[idx+1:]
}

// JoinInner joins an outer class name with an inner simple name.
func JoinInner(outer, inner string) string {
	return outer + InnerSeparator + inner
}
