package schema

// EventsEventTable represents the 'events.event' table
type EventsEventTable struct {
	Table       string
	ID          string
	Slug        string
	Status      string
	Archived    string
	StartsAt    string
	EndsAt      string
	City        string
	Venue       string
	Address     string
	Format      string
	PriceType   string
	PriceMin    string
	PriceMax    string
	Title       string
	Description string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// EventsEvent is the schema definition for events.event
var EventsEvent = EventsEventTable{
	Table:       "events.event",
	ID:          "id",
	Slug:        "slug",
	Status:      "status",
	Archived:    "archived",
	StartsAt:    "startsat",
	EndsAt:      "endsat",
	City:        "city",
	Venue:       "venue",
	Address:     "address",
	Format:      "format",
	PriceType:   "pricetype",
	PriceMin:    "pricemin",
	PriceMax:    "pricemax",
	Title:       "title",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t EventsEventTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Status, t.Archived, t.StartsAt, t.EndsAt,
		t.City, t.Venue, t.Address, t.Format, t.PriceType, t.PriceMin,
		t.PriceMax, t.Title, t.Description, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
