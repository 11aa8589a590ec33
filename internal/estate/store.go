package estate

import "context"

// Store describes persistence for properties and their attachments.
// FindProperty returns the property with units, registry records and utility
// accounts loaded.
type Store interface {
	CreateProperty(ctx context.Context, p *Property) error
	UpdateProperty(ctx context.Context, p *Property) error
	FindProperty(ctx context.Context, id string) (*Property, error)
	ListProperties(ctx context.Context, clientID string) ([]*Property, error)
	AddUnit(ctx context.Context, u *Unit) error
	AddRegistryRecord(ctx context.Context, rec *RegistryRecord) error
	AddUtilityAccount(ctx context.Context, acc *UtilityAccount) error
}
