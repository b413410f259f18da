package notifier

import "context"

// Notifier delivers a rendered notification to one recipient. Delivery is
// best-effort: lifecycle operations commit their state change first and
// only then call Send, so a failure here can never roll business state
// back.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
