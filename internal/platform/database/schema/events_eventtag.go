package schema

// EventsEventTagTable represents the 'events.eventtag' junction table
type EventsEventTagTable struct {
	Table   string
	EventID string
	TagID   string
}

// EventsEventTag is the schema definition for events.eventtag
var EventsEventTag = EventsEventTagTable{
	Table:   "events.eventtag",
	EventID: "eventid",
	TagID:   "tagid",
}
