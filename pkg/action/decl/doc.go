// Package decl loads action pipelines declared in YAML.
//
// A file lists named pipelines; each item either uses a unit registered in a
// Catalog (with optional args) or includes another pipeline, which is spliced
// in place:
//
//	pipelines:
//	  boot:
//	    - use: start
//	      args: ["fast"]
//	  up:
//	    - use: validate
//	    - include: boot
package decl
