// Package registry provides the descriptor tables that algorithm
// implementations register themselves in.
//
// There is one table per algorithm family (ciphers, hashes and PRNGs). Every
// table has the same fixed capacity and is guarded by its own lock. Indexes
// handed out by Register stay stable until the slot is unregistered, so
// callers may cache them and check them with Validate before use.
//
// Lookups are linear scans over a small array. Tables are filled once at
// startup and read on every dispatch by name afterwards.
package registry
