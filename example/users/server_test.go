package users_test

import (
	"context"
	"testing"

	"github.com/appointy/gqlcore/example/users"
	"github.com/stretchr/testify/require"
)

func buildSchema(t *testing.T) (*users.Server, func(query string, vars map[string]interface{}) map[string]interface{}) {
	t.Helper()
	schema, server, err := users.NewSchema()
	require.NoError(t, err)

	run := func(query string, vars map[string]interface{}) map[string]interface{} {
		result := users.Execute(context.Background(), schema, query, vars, "")
		require.False(t, result.Errors.HasErrors(), "unexpected errors: %v", result.Errors)
		data, ok := result.Data.(map[string]interface{})
		require.True(t, ok, "expected map data, got %T", result.Data)
		return data
	}
	return server, run
}

func TestIntrospectionCarriesDescriptions(t *testing.T) {
	_, run := buildSchema(t)

	data := run(`{
		__schema {
			types {
				name
				description
				specifiedByURL
				fields { name description }
			}
		}
	}`, nil)

	schema := data["__schema"].(map[string]interface{})
	types := schema["types"].([]interface{})

	var sawUserDesc, sawInputDesc, sawDateTimeSpecifiedBy bool
	for _, raw := range types {
		typ := raw.(map[string]interface{})
		switch typ["name"] {
		case "User":
			if desc, _ := typ["description"].(string); desc != "" {
				sawUserDesc = true
			}
		case "CreateUserInput":
			if desc, _ := typ["description"].(string); desc != "" {
				sawInputDesc = true
			}
		case "DateTime":
			if url, _ := typ["specifiedByURL"].(string); url != "" {
				sawDateTimeSpecifiedBy = true
			}
		}
	}
	require.True(t, sawUserDesc, "User should carry a description")
	require.True(t, sawInputDesc, "CreateUserInput should carry a description")
	require.True(t, sawDateTimeSpecifiedBy, "DateTime should carry a specifiedByURL")
}

func TestAllUsersReturnsSeedUser(t *testing.T) {
	_, run := buildSchema(t)

	data := run(`{ allUsers { id name email } }`, nil)
	all := data["allUsers"].([]interface{})
	require.Len(t, all, 1)
	u := all[0].(map[string]interface{})
	require.Equal(t, "u1", u["id"])
	require.Equal(t, "John Doe", u["name"])
}

func TestCreateUserThenFetchByID(t *testing.T) {
	_, run := buildSchema(t)

	created := run(`mutation {
		createUser(input: {
			name: "Jane Roe",
			email: "jane@example.com",
			reputation: 8.0,
			isActive: true,
			role: MEMBER
		}) { id name role }
	}`, nil)
	newUser := created["createUser"].(map[string]interface{})
	id, _ := newUser["id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, "MEMBER", newUser["role"])

	fetched := run(`query($id: ID!) { user(userID: $id) { id name } }`, map[string]interface{}{"id": id})
	u := fetched["user"].(map[string]interface{})
	require.Equal(t, id, u["id"])
	require.Equal(t, "Jane Roe", u["name"])
}

func TestAddUserToTeamAndSearch(t *testing.T) {
	_, run := buildSchema(t)

	add := run(`mutation { addUserToTeam(userID: "u1", teamID: "t1") { id team { id name members { id } } } }`, nil)
	u := add["addUserToTeam"].(map[string]interface{})
	team := u["team"].(map[string]interface{})
	require.Equal(t, "t1", team["id"])
	members := team["members"].([]interface{})
	require.Len(t, members, 1)

	results := run(`{ search(query: "Platform") { ... on Team { id name } } }`, nil)
	hits := results["search"].([]interface{})
	require.Len(t, hits, 1)
	hit := hits[0].(map[string]interface{})
	require.Equal(t, "Platform", hit["name"])
}

func TestContactByFindsUserByEmail(t *testing.T) {
	_, run := buildSchema(t)

	result := run(`mutation { contactBy(input: { email: "jdoe@example.com" }) { id } }`, nil)
	contacted := result["contactBy"].(map[string]interface{})
	require.Equal(t, "u1", contacted["id"])
}
