package schema

// EventTable represents the 'public.event' table
type EventTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	EventDate   string
	Location    string
	DistanceKM  string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// Event is the schema definition for public.event
var Event = EventTable{
	Table:       "public.event",
	ID:          "id",
	Title:       "title",
	Description: "description",
	EventDate:   "eventdate",
	Location:    "location",
	DistanceKM:  "distancekm",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t EventTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.EventDate, t.Location,
		t.DistanceKM, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
