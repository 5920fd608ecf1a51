// Package task runs background work on a bounded in-memory queue served by a
// fixed pool of workers. Meeting event handlers run through it so that slow
// handlers never hold up the request that caused the event.
package task
