// Package domain contains the meeting aggregate, its child entities, and the
// value objects that guard what a valid meeting looks like. It has no
// knowledge of persistence or delivery; callers construct inputs, invoke the
// aggregate's operations, and persist the resulting state.
package domain
