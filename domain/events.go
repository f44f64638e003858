package domain

import "time"

// EventType identifies a state change published on the in-process bus.
type EventType string

const (
	// Session lifecycle events
	SessionEstablishedEvent EventType = "SESSION_ESTABLISHED"
	SessionClearedEvent     EventType = "SESSION_CLEARED"

	// Report lifecycle events
	ReportCreatedEvent   EventType = "REPORT_CREATED"
	ReportCompletedEvent EventType = "REPORT_COMPLETED"
)

// Event is a business event published by the session manager or the report
// engine. Dependent stores subscribe instead of being called into directly,
// which keeps the cross-store cascade an explicit construction-time wiring.
type Event struct {
	Type      EventType
	UserID    string
	Report    *EmergencyReport
	Timestamp time.Time
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType EventType, userID string) Event {
	return Event{
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}

// WithReport attaches the report the event concerns.
func (e Event) WithReport(report *EmergencyReport) Event {
	e.Report = report
	return e
}

// EventHandler consumes published events.
type EventHandler func(Event)

// EventBus fans events out to subscribed handlers.
type EventBus interface {
	Subscribe(eventType EventType, handler EventHandler)
	Publish(event Event)
}
