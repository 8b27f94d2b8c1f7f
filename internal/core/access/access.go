// Package access decides who may touch a post.
package access

import (
	"fmt"

	userPort "yatube/internal/ports/user"
)

// PostRef addresses a post the way routes do: by author username and id.
type PostRef struct {
	Username string
	PostID   uint
}

// DetailPath is the URL of the post detail page.
func (r PostRef) DetailPath() string {
	return fmt.Sprintf("/%s/%d/", r.Username, r.PostID)
}

// Decision is the outcome of a guard. A denied request is sent to RedirectTo.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// OnlyAuthor lets the request through when the actor is the user named in
// the route; everyone else is sent to the post detail page.
func OnlyAuthor(actor *userPort.UserDTO, ref PostRef) Decision {
	if actor != nil && actor.Username == ref.Username {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: ref.DetailPath()}
}
