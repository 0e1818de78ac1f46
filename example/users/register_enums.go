package users

import "github.com/appointy/gqlcore/schemabuilder"

// RegisterEnums registers Role as a GraphQL enum.
func RegisterEnums(sb *schemabuilder.Schema) {
	sb.Enum(RoleMember, &schemabuilder.EnumMapping{
		Map: map[string]interface{}{
			"ADMIN":  RoleAdmin,
			"MEMBER": RoleMember,
			"GUEST":  RoleGuest,
		},
		Description: "Access level granted to a user.",
	})
}
