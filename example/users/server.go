package users

import (
	"context"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/graphql/executor"
	"github.com/appointy/gqlcore/graphql/validation"
	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/parser"
	"github.com/appointy/gqlcore/schemabuilder"
)

// NewSchema builds the worked-example schema and the in-memory Server that
// backs its resolvers. sb.Build() wires the introspection subgraph in
// before its own Validate() call, so the schema returned here is already
// introspectable.
func NewSchema() (*graphql.Schema, *Server, error) {
	sb := schemabuilder.NewSchema()
	server := NewServer()

	if err := RegisterSchema(sb, server); err != nil {
		return nil, nil, err
	}

	schema, err := sb.Build()
	if err != nil {
		return nil, nil, err
	}
	return schema, server, nil
}

// Execute runs one GraphQL request end to end: parse, validate, execute.
// This is the three phases a transport would drive against schema; no HTTP
// handler is provided here, as transport plumbing is out of scope.
func Execute(ctx context.Context, schema *graphql.Schema, query string, variables map[string]interface{}, operationName string) *executor.Result {
	doc, err := parser.ParseDocument(gqlerrors.Source{Name: "query", Body: query}, false)
	if err != nil {
		return &executor.Result{Errors: gqlerrors.List{gqlerrors.Wrap(gqlerrors.SyntaxError, err, "parse error")}}
	}
	if errs := validation.Validate(schema, doc, variables); errs.HasErrors() {
		return &executor.Result{Errors: errs}
	}
	return executor.ExecuteRequest(schema, doc, executor.RequestOptions{
		Variables:     variables,
		OperationName: operationName,
		Context:       ctx,
	})
}

func (s *Server) userByID(id string) *User {
	for _, u := range s.users {
		if u.ID.Value == id {
			return u
		}
	}
	return nil
}

func (s *Server) teamByID(id string) *Team {
	for _, t := range s.teams {
		if t.ID.Value == id {
			return t
		}
	}
	return nil
}

func (s *Server) membersOf(teamID string) []*User {
	var members []*User
	for _, u := range s.users {
		if u.TeamID != nil && u.TeamID.Value == teamID {
			members = append(members, u)
		}
	}
	return members
}
