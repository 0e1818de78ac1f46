package graphql_test

import (
	"testing"

	"github.com/appointy/gqlcore/graphql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewUUIDScalarRoundTrips(t *testing.T) {
	scalar := graphql.NewUUIDScalar("UUID")

	id := uuid.New()
	serialized, err := scalar.Serialize(id)
	require.NoError(t, err)
	require.Equal(t, id.String(), serialized)

	coerced, err := scalar.Coerce(id.String())
	require.NoError(t, err)
	require.Equal(t, id.String(), coerced)
}

func TestNewUUIDScalarRejectsMalformedString(t *testing.T) {
	scalar := graphql.NewUUIDScalar("UUID")

	_, err := scalar.Coerce("not-a-uuid")
	require.Error(t, err)
}

func TestNewRegexScalarEnforcesPattern(t *testing.T) {
	scalar := graphql.NewRegexScalar("ZipCode", `^\d{5}$`)

	v, err := scalar.Coerce("94107")
	require.NoError(t, err)
	require.Equal(t, "94107", v)

	_, err = scalar.Coerce("not-a-zip")
	require.Error(t, err)

	_, err = scalar.Serialize("abc")
	require.Error(t, err)
}
