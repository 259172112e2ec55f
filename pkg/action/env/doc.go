// Package env provides Environment, a key/value environment for action
// chains. It records halts with their errors and cancellations so the
// default fault-containment unit can mark it instead of returning errors.
package env
