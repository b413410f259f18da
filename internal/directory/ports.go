package directory

import "context"

// Directory answers role questions about an email address. Roster
// management (adding clients, promoting admins) is out of scope; the core
// only reads.
type Directory interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsClient(ctx context.Context, email string) (bool, error)
	CountClients(ctx context.Context) (int, error)
}
