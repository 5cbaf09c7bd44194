package ordering

import "context"

// Notifier delivers order notifications to a single recipient
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
