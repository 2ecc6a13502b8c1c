// Package authz provides the fixed allow-list check for privileged auction
// operations: skip, finalize, team deletion and purse assignment.
package authz

// AllowList authorizes a fixed set of actor IDs.
type AllowList struct {
	actors map[string]struct{}
}

// New builds an allow-list from actor IDs. An empty list authorizes nobody.
func New(actorIDs []string) *AllowList {
	actors := make(map[string]struct{}, len(actorIDs))
	for _, id := range actorIDs {
		if id != "" {
			actors[id] = struct{}{}
		}
	}
	return &AllowList{actors: actors}
}

// IsAuthorized reports whether the actor may run privileged operations.
func (a *AllowList) IsAuthorized(actorID string) bool {
	_, ok := a.actors[actorID]
	return ok
}
