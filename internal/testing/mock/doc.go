// Package mock provides in-memory stand-ins for the Kubernetes boundary.
//
// Executor answers commands from a script keyed by pod and command line and
// records every call, so tests can assert exactly which exec requests a
// pass issued. Locator matches patterns against a fixed pod inventory with
// the same rules as the real locator.
package mock
