package models

// Tag is a catalog label; names are unique.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
