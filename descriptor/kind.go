package descriptor

// PrimitiveType is one of the JVM base types, identified by its descriptor tag.
type PrimitiveType byte

const (
	Boolean PrimitiveType = 'Z'
	Byte    PrimitiveType = 'B'
	Char    PrimitiveType = 'C'
	Short   PrimitiveType = 'S'
	Int     PrimitiveType = 'I'
	Long    PrimitiveType = 'J'
	Float   PrimitiveType = 'F'
	Double  PrimitiveType = 'D'
)

// primitiveNames holds the Java keyword of every base type.
var primitiveNames = map[PrimitiveType]string{
	Boolean: "boolean",
	Byte:    "byte",
	Char:    "char",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
}

// PrimitiveFromTag returns the base type for a descriptor tag.
func PrimitiveFromTag(tag byte) (PrimitiveType, bool) {
	p := PrimitiveType(tag)
	_, ok := primitiveNames[p]

	return p, ok
}

// Keyword returns the Java keyword for the type, e.g. "int".
func (p PrimitiveType) Keyword() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}

	return "unknown"
}

// IsWide reports whether values of the type take two local variable slots.
func (p PrimitiveType) IsWide() bool {
	return p == Long || p == Double
}

func (p PrimitiveType) String() string { return string(rune(p)) }

func (PrimitiveType) isType()      {}
func (PrimitiveType) isFieldType() {}
