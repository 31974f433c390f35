package ports

import "context"

// NotificationSink delivers outbound notifications (activation links, password
// reset links). Delivery is best-effort: a failed send must never roll back
// token state that has already been persisted.
type NotificationSink interface {
	Send(ctx context.Context, to, subject, body string) error
}
