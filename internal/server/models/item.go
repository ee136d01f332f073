package models

// Item is a catalog entry. Avatar holds the object-storage key of the item's
// picture, not the picture itself.
type Item struct {
	ID       int64
	Name     string
	Count    int64
	Original int64
	Discount int64
	Avatar   string
}

// Price groups the two price fields the way the API represents them.
type Price struct {
	Original int64 `json:"original"`
	Discount int64 `json:"discount"`
}

// TagRef is a tag as attached to an item.
type TagRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemTag is one row of the item/tag relation joined with the tag name.
type ItemTag struct {
	ItemID  int64
	TagID   int64
	TagName string
}

// ItemView is the API representation of an item with its tags merged in.
type ItemView struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Count  int64    `json:"count"`
	Avatar string   `json:"avatar"`
	Price  Price    `json:"price"`
	Tags   []TagRef `json:"tags"`
}
