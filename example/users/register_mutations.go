package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appointy/gqlcore/schemabuilder"
	"github.com/appointy/idgen"
	"github.com/google/uuid"
)

// RegisterCreateUserMutation registers createUser.
func RegisterCreateUserMutation(sb *schemabuilder.Schema, s *Server) {
	m := sb.Mutation()

	m.FieldFunc("createUser", func(ctx context.Context, args struct {
		Input CreateUserInput
	}) *User {
		newUser := &User{
			ID:         schemabuilder.ID{Value: idgen.New()},
			Name:       args.Input.Name,
			Email:      args.Input.Email,
			Age:        args.Input.Age,
			Reputation: args.Input.Reputation,
			IsActive:   args.Input.IsActive,
			Role:       args.Input.Role,
			CreatedAt:  time.Now(),
			SessionID:  uuid.New(),
		}
		s.users = append(s.users, newUser)
		return newUser
	}, "Creates a new user.")
}

// RegisterContactByMutation registers contactBy, which looks a user up by
// exactly one of email or phone (ContactByInput's @oneOf guarantees that at
// the coercion layer, before this resolver ever runs).
func RegisterContactByMutation(sb *schemabuilder.Schema, s *Server) {
	m := sb.Mutation()

	m.FieldFunc("contactBy", func(ctx context.Context, args struct {
		Input *ContactByInput
	}) (*User, error) {
		if args.Input == nil {
			return nil, errors.New("input required")
		}
		var matchEmail, matchPhone string
		if args.Input.Email != nil {
			matchEmail = *args.Input.Email
		}
		if args.Input.Phone != nil {
			matchPhone = *args.Input.Phone
		}
		for _, u := range s.users {
			if (matchEmail != "" && u.Email == matchEmail) || (matchPhone != "" && u.Email == matchPhone) {
				return u, nil
			}
		}
		return nil, fmt.Errorf("user not found by email=%s or phone=%s", matchEmail, matchPhone)
	}, "Looks a user up by email or phone.")
}

// RegisterCreateTeamMutation registers createTeam.
func RegisterCreateTeamMutation(sb *schemabuilder.Schema, s *Server) {
	m := sb.Mutation()

	m.FieldFunc("createTeam", func(ctx context.Context, args struct{ Name string }) *Team {
		team := &Team{
			ID:             schemabuilder.ID{Value: idgen.New()},
			Name:           args.Name,
			FoundedAt:      schemabuilder.Timestamp{Seconds: time.Now().Unix()},
			SessionTimeout: schemabuilder.Duration{Seconds: 3600},
		}
		s.teams = append(s.teams, team)
		return team
	}, "Creates a new team.")
}

// RegisterAddUserToTeamMutation registers addUserToTeam, assigning an
// existing user to an existing team.
func RegisterAddUserToTeamMutation(sb *schemabuilder.Schema, s *Server) {
	m := sb.Mutation()

	m.FieldFunc("addUserToTeam", func(ctx context.Context, args struct {
		UserID schemabuilder.ID
		TeamID schemabuilder.ID
	}) (*User, error) {
		u := s.userByID(args.UserID.Value)
		if u == nil {
			return nil, fmt.Errorf("user %q not found", args.UserID.Value)
		}
		if s.teamByID(args.TeamID.Value) == nil {
			return nil, fmt.Errorf("team %q not found", args.TeamID.Value)
		}
		teamID := args.TeamID
		u.TeamID = &teamID
		return u, nil
	}, "Assigns a user to a team.")
}

// RegisterMutation registers every mutation field.
func RegisterMutation(sb *schemabuilder.Schema, s *Server) {
	RegisterCreateUserMutation(sb, s)
	RegisterContactByMutation(sb, s)
	RegisterCreateTeamMutation(sb, s)
	RegisterAddUserToTeamMutation(sb, s)
}
