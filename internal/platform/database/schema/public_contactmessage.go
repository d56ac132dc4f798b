package schema

// ContactMessageTable represents the 'public.contactmessage' table
type ContactMessageTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Subject   string
	Body      string
	IsRead    string
	CreatedAt string
}

// ContactMessage is the schema definition for public.contactmessage
var ContactMessage = ContactMessageTable{
	Table:     "public.contactmessage",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Subject:   "subject",
	Body:      "body",
	IsRead:    "isread",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t ContactMessageTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Subject, t.Body, t.IsRead, t.CreatedAt,
	}
}
