package users

import "github.com/appointy/gqlcore/schemabuilder"

// RegisterInputs registers the two input objects. Neither calls FieldFunc:
// both rely on the builder's struct-tag auto-reflection, the same path an
// untouched args-struct like CreateDroidInput exercises.
func RegisterInputs(sb *schemabuilder.Schema) {
	sb.InputObject("CreateUserInput", CreateUserInput{}, "Fields for creating a new user.")
	sb.InputObject("ContactByInput", ContactByInput{}, "Look a user up by exactly one of email or phone.")
}
