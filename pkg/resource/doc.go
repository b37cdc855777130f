// Package resource implements the Statekit data-access client: a registry of
// model definitions with singular/plural forms, plus records that know how to
// persist themselves against a REST backend. The public API centres around
// the App type, which owns the backend and the registered models; Model
// exposes the read operations (Get/GetAll) and Record the write operations
// (Save/Update). Backends are swappable, so tests and offline tooling can use
// the in-memory implementation from the mock subpackage.
package resource
