// Package events decouples meeting changes from their side effects.
//
// Services emit a MeetingEvent after a change has been committed; any number
// of EventHandler implementations registered with the emitter react to it.
// The only handler shipped today logs every event.
package events
