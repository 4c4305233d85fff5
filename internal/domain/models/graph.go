package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Graph item types. Text items carry prose fields; pix items carry a
// media URL with an optional title.
const (
	ItemTypeText = "text"
	ItemTypePix  = "pix"
)

// GraphItem is one entry in a node or edge document's content.
//
// Documents written before item types were enforced may have an empty
// Type; readers treat those as untagged and just use whichever Data
// fields are present.
type GraphItem struct {
	Type string   `bson:"type,omitempty" json:"type,omitempty"`
	Data ItemData `bson:"data" json:"data"`
}

// ItemData holds the optional payload fields of a graph item.
type ItemData struct {
	Title   string `bson:"title,omitempty" json:"title,omitempty"`
	Content string `bson:"content,omitempty" json:"content,omitempty"`
	Memo    string `bson:"memo,omitempty" json:"memo,omitempty"`
	URL     string `bson:"url,omitempty" json:"url,omitempty"`
}

// GraphDoc is a node or edge document. A project references at most one
// of each; the document's lifecycle is tied to the owning project.
type GraphDoc struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`
	Items     []GraphItem        `bson:"items" json:"items"`
}

// ValidateItems checks a content payload before it is written. Tagged
// items must use a known type; pix items must carry a URL. Untagged
// items are rejected on write (they only exist in legacy documents).
func ValidateItems(items []GraphItem) error {
	for i, it := range items {
		switch it.Type {
		case ItemTypeText:
			// all fields optional
		case ItemTypePix:
			if it.Data.URL == "" {
				return fmt.Errorf("item %d: pix item requires a url", i)
			}
		default:
			return fmt.Errorf("item %d: unknown item type %q", i, it.Type)
		}
	}
	return nil
}
