package users

import (
	"time"

	"github.com/appointy/gqlcore/schemabuilder"
	"github.com/google/uuid"
)

// Node marks every object with a globally addressable id field, the way
// a Node/File pair normally works in this builder: embedding Node alone
// does nothing by itself, a concrete object still calls
// InterfaceList(Node{}) and defines its own "id" FieldFunc.
type Node struct {
	schemabuilder.Interface
}

// Role is a user's access level.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleGuest  Role = "GUEST"
)

// User is the primary output object: plain scalars, a deprecated field
// (Age), a DateTime custom scalar (CreatedAt), a UUID-shaped custom scalar
// (SessionID) and a Bytes custom scalar (Avatar).
type User struct {
	Node

	ID         schemabuilder.ID
	Name       string
	Email      string
	Age        int32
	Reputation float64
	IsActive   bool
	Role       Role
	CreatedAt  time.Time
	SessionID  uuid.UUID
	Avatar     schemabuilder.Bytes
	TeamID     *schemabuilder.ID
}

// Team groups users. FoundedAt and SessionTimeout exercise the
// protobuf-backed Timestamp/Duration convenience scalars.
type Team struct {
	Node

	ID             schemabuilder.ID
	Name           string
	FoundedAt      schemabuilder.Timestamp
	SessionTimeout schemabuilder.Duration
}

// SearchResult is a union of the two kinds of thing search can return.
type SearchResult struct {
	schemabuilder.Union

	User *User
	Team *Team
}

// CreateUserInput is auto-reflected from its struct tags (no FieldFunc
// registration): Age carries a deprecation note the same way a
// tagged input-object field normally does.
type CreateUserInput struct {
	Name       string
	Email      string
	Age        int32 `graphql:",deprecated=Use birthdate instead"`
	Reputation float64
	IsActive   bool
	Role       Role
}

// ContactByInput demands exactly one of Email or Phone, enforced by the
// @oneOf directive the OneOfInput marker attaches.
type ContactByInput struct {
	schemabuilder.OneOfInput

	Email *string
	Phone *string
}

// Server is the in-memory store resolvers read and write.
type Server struct {
	users []*User
	teams []*Team
}

// NewServer seeds one user and one team so queries have something to find.
func NewServer() *Server {
	team := &Team{
		ID:             schemabuilder.ID{Value: "t1"},
		Name:           "Platform",
		FoundedAt:      schemabuilder.Timestamp{Seconds: time.Now().Add(-365 * 24 * time.Hour).Unix()},
		SessionTimeout: schemabuilder.Duration{Seconds: 3600},
	}
	teamID := team.ID
	return &Server{
		teams: []*Team{team},
		users: []*User{
			{
				ID:         schemabuilder.ID{Value: "u1"},
				Name:       "John Doe",
				Email:      "jdoe@example.com",
				Age:        30,
				Reputation: 9.5,
				IsActive:   true,
				Role:       RoleAdmin,
				CreatedAt:  time.Now(),
				SessionID:  uuid.New(),
				TeamID:     &teamID,
			},
		},
	}
}
