package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a collaborator account.
//
// NOTE:
//   - ProjectIDs is the user's side of the user↔project membership.
//     Projects keep their own UserIDs list; the two are mutated
//     independently by best-effort sequential writes, so they can
//     drift (duplicates after repeated invite acceptance, stale ids
//     after another member deletes a project).
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email      string               `bson:"email" json:"email"`
	Name       string               `bson:"name" json:"name"`
	ProjectIDs []primitive.ObjectID `bson:"project_ids" json:"project_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasProject reports whether id is in the user's project list.
func (u User) HasProject(id primitive.ObjectID) bool {
	for _, pid := range u.ProjectIDs {
		if pid == id {
			return true
		}
	}
	return false
}
