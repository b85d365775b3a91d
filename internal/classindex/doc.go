// Package classindex loads a YAML description of obfuscated classes and
// answers hierarchy and field type questions from it.
//
// The index stands in for a class path: each entry names a class, its
// superclass, its interfaces and the descriptors of its fields.
//
//	classes:
//	  - name: ght
//	    super: java/lang/Object
//	    interfaces: [java/lang/Runnable]
//	    fields:
//	      iu: Lorg/slf4j/Logger;
//
// An *Index implements both model.InheritanceProvider and
// model.FieldTypeProvider.
package classindex
