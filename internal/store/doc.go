// Package store defines the persistence contracts of the meeting API.
// Implementations live under internal/platform; services depend only on the
// interfaces and sentinel errors declared here.
package store
