// Package readiness blocks process startup until the datastore answers.
//
// A Gate probes an injected Provider, printing a progress line for every
// failed attempt and sleeping for a fixed delay between attempts. With the
// default Policy the gate waits forever; a bounded Policy turns the wait into
// a terminal ErrAttemptsExhausted failure instead.
package readiness
