package schema

// ApplicationTable represents the 'public.application' table
type ApplicationTable struct {
	Table          string
	ID             string
	FullName       string
	Email          string
	Phone          string
	NationalID     string
	BirthYear      string
	Category       string
	Club           string
	City           string
	EmergencyName  string
	EmergencyPhone string
	Status         string
	CreatedAt      string
	UpdatedAt      string
}

// Application is the schema definition for public.application
var Application = ApplicationTable{
	Table:          "public.application",
	ID:             "id",
	FullName:       "fullname",
	Email:          "email",
	Phone:          "phone",
	NationalID:     "nationalid",
	BirthYear:      "birthyear",
	Category:       "category",
	Club:           "club",
	City:           "city",
	EmergencyName:  "emergencyname",
	EmergencyPhone: "emergencyphone",
	Status:         "status",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t ApplicationTable) Columns() []string {
	return []string{
		t.ID, t.FullName, t.Email, t.Phone, t.NationalID, t.BirthYear,
		t.Category, t.Club, t.City, t.EmergencyName, t.EmergencyPhone,
		t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
