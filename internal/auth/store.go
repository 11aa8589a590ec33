package auth

import "context"

// Store describes persistence operations required by the auth subsystem.
type Store interface {
	Create(ctx context.Context, p *Provider) error
	Find(ctx context.Context, id string) (*Provider, error)
	FindByEmail(ctx context.Context, email string) (*Provider, error)
	List(ctx context.Context) ([]*Provider, error)
}
