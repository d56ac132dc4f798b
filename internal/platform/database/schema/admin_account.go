package schema

// AdminAccountTable represents the 'admin.account' table
type AdminAccountTable struct {
	Table        string
	ID           string
	Username     string
	PasswordHash string
	Role         string
	Name         string
	IsActive     string
	LastLoginAt  string
	CreatedAt    string
	UpdatedAt    string
}

// AdminAccount is the schema definition for admin.account
var AdminAccount = AdminAccountTable{
	Table:        "admin.account",
	ID:           "id",
	Username:     "username",
	PasswordHash: "passwordhash",
	Role:         "role",
	Name:         "name",
	IsActive:     "isactive",
	LastLoginAt:  "lastloginat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t AdminAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.PasswordHash, t.Role, t.Name, t.IsActive,
		t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
