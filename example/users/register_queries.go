package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/appointy/gqlcore/schemabuilder"
)

// RegisterQuery registers every query field.
func RegisterQuery(sb *schemabuilder.Schema, s *Server) {
	q := sb.Query()

	q.FieldFunc("me", func(ctx context.Context) *User {
		if len(s.users) > 0 {
			return s.users[0]
		}
		return nil
	}, "The current user.")

	q.FieldFunc("user", func(ctx context.Context, args struct {
		UserID schemabuilder.ID
	}) (*User, error) {
		if u := s.userByID(args.UserID.Value); u != nil {
			return u, nil
		}
		return nil, fmt.Errorf("user %q not found", args.UserID.Value)
	}, "Looks a user up by id.")

	q.FieldFunc("allUsers", func(ctx context.Context) []*User {
		return s.users
	}, "Every registered user.")

	q.FieldFunc("teams", func(ctx context.Context) []*Team {
		return s.teams
	}, "Every team.")

	q.FieldFunc("search", func(ctx context.Context, args struct{ Query string }) []*SearchResult {
		needle := strings.ToLower(args.Query)
		var results []*SearchResult
		for _, u := range s.users {
			if strings.Contains(strings.ToLower(u.Name), needle) || strings.Contains(strings.ToLower(u.Email), needle) {
				results = append(results, &SearchResult{User: u})
			}
		}
		for _, t := range s.teams {
			if strings.Contains(strings.ToLower(t.Name), needle) {
				results = append(results, &SearchResult{Team: t})
			}
		}
		return results
	}, "Searches users and teams by name.")
}
