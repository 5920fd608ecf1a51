package domain

import "strings"

// MeetingStatus is a stage of the meeting lifecycle. The numeric values are
// persisted and must not be renumbered.
type MeetingStatus int

// Meeting lifecycle stages. Finished and Cancelled are terminal.
const (
	MeetingStatusDraft     MeetingStatus = 1
	MeetingStatusScheduled MeetingStatus = 2
	MeetingStatusOngoing   MeetingStatus = 3
	MeetingStatusFinished  MeetingStatus = 4
	MeetingStatusCancelled MeetingStatus = 5
)

var statusNames = map[MeetingStatus]string{
	MeetingStatusDraft:     "draft",
	MeetingStatusScheduled: "scheduled",
	MeetingStatusOngoing:   "ongoing",
	MeetingStatusFinished:  "finished",
	MeetingStatusCancelled: "cancelled",
}

// String returns the lower-case name of s, or "unknown".
func (s MeetingStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether s is one of the declared stages.
func (s MeetingStatus) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsTerminal reports whether no further transition can leave s.
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusFinished || s == MeetingStatusCancelled
}

// ParseMeetingStatus maps a status name, case-insensitively, to its value.
func ParseMeetingStatus(name string) (MeetingStatus, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for status, statusName := range statusNames {
		if statusName == name {
			return status, nil
		}
	}
	return 0, newMeetingError("meeting status %q is unknown", name)
}

// StatusAction names a lifecycle transition.
type StatusAction string

// Lifecycle transitions a host can request.
const (
	StatusActionSchedule StatusAction = "schedule"
	StatusActionStart    StatusAction = "start"
	StatusActionFinish   StatusAction = "finish"
	StatusActionCancel   StatusAction = "cancel"
)

// ParseStatusAction validates a transition name.
func ParseStatusAction(name string) (StatusAction, error) {
	action := StatusAction(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := statusTransitions[action]; !ok {
		return "", newMeetingError("meeting status action %q is unknown", name)
	}
	return action, nil
}

// statusTransition moves a meeting to target unless the current status has a
// refusal recorded for it. Any status without a refusal may transition.
type statusTransition struct {
	target   MeetingStatus
	refusals map[MeetingStatus]string
}

func (t statusTransition) apply(from MeetingStatus) (MeetingStatus, error) {
	if !from.IsValid() {
		return from, newMeetingError("meeting status is unknown")
	}
	if reason, refused := t.refusals[from]; refused {
		return from, newMeetingError("%s", reason)
	}
	return t.target, nil
}

// statusTransitions is the complete lifecycle table. Cancel from Draft is
// refused.
var statusTransitions = map[StatusAction]statusTransition{
	StatusActionSchedule: {
		target: MeetingStatusScheduled,
		refusals: map[MeetingStatus]string{
			MeetingStatusScheduled: "meeting is already scheduled",
			MeetingStatusOngoing:   "meeting is already ongoing",
			MeetingStatusFinished:  "meeting is finished",
			MeetingStatusCancelled: "meeting is cancelled",
		},
	},
	StatusActionStart: {
		target: MeetingStatusOngoing,
		refusals: map[MeetingStatus]string{
			MeetingStatusDraft:     "meeting is draft",
			MeetingStatusOngoing:   "meeting is already ongoing",
			MeetingStatusFinished:  "meeting is finished",
			MeetingStatusCancelled: "meeting is cancelled",
		},
	},
	StatusActionFinish: {
		target: MeetingStatusFinished,
		refusals: map[MeetingStatus]string{
			MeetingStatusDraft:     "meeting is draft",
			MeetingStatusFinished:  "meeting is already finished",
			MeetingStatusCancelled: "meeting is cancelled",
		},
	},
	// Finished is terminal for Cancel too; a meeting that already took place
	// is never rewritten as cancelled.
	StatusActionCancel: {
		target: MeetingStatusCancelled,
		refusals: map[MeetingStatus]string{
			MeetingStatusDraft:     "meeting is draft",
			MeetingStatusFinished:  "meeting is finished",
			MeetingStatusCancelled: "meeting is already cancelled",
		},
	},
}
