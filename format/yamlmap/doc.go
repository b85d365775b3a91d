// Package yamlmap stores mapping sets as YAML documents.
//
// A document lists top-level classes, each with optional fields, methods
// and inner classes:
//
//	version: "1"
//	classes:
//	  - obf: ght
//	    deobf: com/example/Demo
//	    fields:
//	      - obf: iu
//	        deobf: log
//	    methods:
//	      - obf: trp
//	        desc: (Ljava/lang/String;)V
//	        deobf: run
//	        params: [message]
//	    inner:
//	      - obf: hy
//	        deobf: Inner
//
// Method parameters are either a list of names by position (empty entries
// are skipped) or a map from index to name.
package yamlmap
