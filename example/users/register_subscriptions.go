package users

import (
	"context"
	"time"

	"github.com/appointy/gqlcore/schemabuilder"
)

// RegisterSubscription registers the Subscription root's one field. This
// only shapes the schema: no subscription transport is wired (websocket
// delivery is out of scope here), so the field exists for introspection
// and schema-shape tests, not for a live stream.
func RegisterSubscription(sb *schemabuilder.Schema) {
	s := sb.Subscription()

	s.FieldFunc("currentTime", func(ctx context.Context) func() time.Time {
		return time.Now
	}, "The current server time.")
}
