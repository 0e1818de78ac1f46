package users

import (
	"time"

	"github.com/appointy/gqlcore/schemabuilder"
	"github.com/google/uuid"
)

// RegisterObjects registers every output object: the Node interface, User,
// Team, and the SearchResult union over the two of them.
func RegisterObjects(sb *schemabuilder.Schema, s *Server) {
	node := sb.Object("Node", Node{}, "Anything with a globally unique id.")
	node.FieldFunc("id", func(n *Node) schemabuilder.ID { return schemabuilder.ID{} })

	user := sb.Object("User", User{}, "A person in the system.")
	user.InterfaceList(Node{})
	user.Key("id")
	user.FieldFunc("id", func(u *User) schemabuilder.ID { return u.ID }, "Unique identifier for the user.")
	user.FieldFunc("name", func(u *User) string { return u.Name }, "Full name of the user.")
	user.FieldFunc("email", func(u *User) string { return u.Email }, "Email address.")
	user.FieldFunc("age", func(u *User) int32 { return u.Age }, "Age in years.")
	user.Deprecated("age", "Use birthdate instead")
	user.FieldFunc("reputation", func(u *User) float64 { return u.Reputation }, "Reputation score (0-10).")
	user.FieldFunc("isActive", func(u *User) bool { return u.IsActive }, "Whether the user is active.")
	user.FieldFunc("role", func(u *User) Role { return u.Role }, "Access level.")
	user.FieldFunc("createdAt", func(u *User) time.Time { return u.CreatedAt }, "Account creation timestamp.")
	user.FieldFunc("sessionID", func(u *User) uuid.UUID { return u.SessionID }, "Current session token.")
	user.FieldFunc("avatar", func(u *User) schemabuilder.Bytes { return u.Avatar }, "Avatar image bytes.")
	user.FieldFunc("team", func(u *User) *Team {
		if u.TeamID == nil {
			return nil
		}
		return s.teamByID(u.TeamID.Value)
	}, "Team this user belongs to, if any.")

	team := sb.Object("Team", Team{}, "A group of users.")
	team.InterfaceList(Node{})
	team.Key("id")
	team.FieldFunc("id", func(t *Team) schemabuilder.ID { return t.ID }, "Unique identifier for the team.")
	team.FieldFunc("name", func(t *Team) string { return t.Name }, "Team name.")
	team.FieldFunc("foundedAt", func(t *Team) schemabuilder.Timestamp { return t.FoundedAt }, "When the team was founded.")
	team.FieldFunc("sessionTimeout", func(t *Team) schemabuilder.Duration { return t.SessionTimeout }, "How long a member's session stays valid.")
	team.FieldFunc("members", func(t *Team) []*User { return s.membersOf(t.ID.Value) }, "Users belonging to this team.")

	sb.Object("SearchResult", SearchResult{}, "Either a User or a Team.")
}
