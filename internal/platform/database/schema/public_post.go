package schema

// PostTable represents the 'public.post' table
type PostTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Summary     string
	Body        string
	Status      string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
}

// Post is the schema definition for public.post
var Post = PostTable{
	Table:       "public.post",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Summary:     "summary",
	Body:        "body",
	Status:      "status",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t PostTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Summary, t.Body, t.Status,
		t.PublishedAt, t.CreatedAt, t.UpdatedAt,
	}
}
