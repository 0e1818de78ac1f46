package users

import "github.com/appointy/gqlcore/schemabuilder"

// RegisterSchema wires scalars, enums, objects and inputs before the
// operations that reference them.
func RegisterSchema(sb *schemabuilder.Schema, s *Server) error {
	if err := RegisterScalars(sb); err != nil {
		return err
	}
	RegisterEnums(sb)
	RegisterObjects(sb, s)
	RegisterInputs(sb)

	RegisterQuery(sb, s)
	RegisterMutation(sb, s)
	RegisterSubscription(sb)
	return nil
}
