package cdn

/*
ListResponse is the payload of the per-tag listing resource.
*/
type ListResponse struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

type Resource struct {
	PublicID  string `json:"public_id"`
	Format    string `json:"format"`
	Version   int64  `json:"version"`
	CreatedAt string `json:"created_at"`
}
