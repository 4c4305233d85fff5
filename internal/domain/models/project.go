package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceholderThumbnail is the image URL new projects start with until a
// thumbnail upload replaces it.
const PlaceholderThumbnail = "/static/img/project-placeholder.png"

// Project is a collaborative board.
//
// The JSON keys (_id, image, time, like) are part of the client
// contract and must not change.
type Project struct {
	ID      primitive.ObjectID   `bson:"_id" json:"_id"`
	Name    string               `bson:"name" json:"name"`
	UserIDs []primitive.ObjectID `bson:"user_ids" json:"user_ids"`

	// A project has at most one node document and one edge document.
	NodeID *primitive.ObjectID `bson:"node_id,omitempty" json:"node_id,omitempty"`
	EdgeID *primitive.ObjectID `bson:"edge_id,omitempty" json:"edge_id,omitempty"`

	Image string    `bson:"image" json:"image"`
	Time  time.Time `bson:"time" json:"time"`
	Like  bool      `bson:"like" json:"like"`
}

// HasMember reports whether id is in the project's member list.
func (p Project) HasMember(id primitive.ObjectID) bool {
	for _, uid := range p.UserIDs {
		if uid == id {
			return true
		}
	}
	return false
}
