// Package modules provides a small module lifecycle system to cleanly put all
// moving parts of a service together.
//
// Modules are started in a multi-stage process and may depend on other
// modules:
// - Go's init(): register flags
// - prep: check flags, register config variables
// - start: start actual work, access config
// - stop: gracefully shut down
//
// **Workers**
// A simple function that is run by the module while catching
// panics and reporting them. Ideal for long running (possibly) idle goroutines.
// Can be automatically restarted if execution ends with an error.
//
// **Events**
// Modules may register events, other modules may hook into them. Hooks are run
// as workers of the hooking module once both modules are online.
package modules
