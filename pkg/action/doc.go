// Package action builds ordered middleware chains ("action chains") and runs
// them against a shared environment.
//
// A Builder accumulates entries in registration order. Compiling a Builder
// turns the flat entry list into one nested call chain where every unit wraps
// the remainder of the chain as its next Action. The fault-containment unit
// (ErrorHalt by default) is always prepended, and an implicit no-op terminates
// the chain.
//
// Key operations:
// - New/Use/UseBlock: declare a pipeline, splicing nested Builders in place
// - Insert/InsertBefore/InsertAfter/Replace/Delete: edit a pipeline by unit name
// - Compile: build a Chain bound to an environment
// - Run: compile and invoke in one step
//
// Units decide whether to continue: calling next continues the chain, returning
// without calling it halts the chain early.
package action
