// Package service contains the meeting use cases. It loads aggregates
// through store.MeetingStore, applies domain operations, enforces who may
// perform them and publishes events once changes are committed.
//
// Mutating operations run in a single transaction: the meeting row is
// locked with GetByIDForUpdate, changed in memory and saved back, so
// concurrent writers to one meeting are serialized by the database.
//
// Expected failures are returned as sentinel errors (ErrMeetingNotFound,
// ErrNotHost, ...) or as *domain.MeetingError for rule violations.
// Anything else is wrapped in a *MeetingServiceError.
package service
