package schema

// EventsTagTable represents the 'events.tag' table
type EventsTagTable struct {
	Table  string
	ID     string
	Label  string
	Status string
}

// EventsTag is the schema definition for events.tag
var EventsTag = EventsTagTable{
	Table:  "events.tag",
	ID:     "id",
	Label:  "label",
	Status: "status",
}
