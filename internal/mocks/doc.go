// Package mocks provides hand-written mock implementations shared by tests.
//
// Each mock has a function field per interface method. When a field is nil
// the mock falls back to a simple default: MockMeetingStore keeps meetings
// in memory, MockJWTService returns its Token, Claims and error fields, and
// MockEventEmitter records what it was given. MockMeetingService has no
// default and fails any call whose field is unset.
//
//	meetings := mocks.NewMockMeetingStore(db)
//	meetings.UpdateFn = func(ctx context.Context, m *domain.Meeting) error {
//	    return errors.New("boom")
//	}
package mocks
