package clients

import "context"

// Store describes persistence for clients, partners and contracts.
type Store interface {
	CreateClient(ctx context.Context, c *Client) error
	UpdateClient(ctx context.Context, c *Client) error
	FindClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context, kind Kind) ([]*Client, error)

	CreatePartner(ctx context.Context, p *Partner) error
	ListPartners(ctx context.Context, companyID string) ([]*Partner, error)

	CreateContract(ctx context.Context, c *Contract) error
	UpdateContract(ctx context.Context, c *Contract) error
	FindContract(ctx context.Context, id string) (*Contract, error)
	ListContracts(ctx context.Context, clientID, providerID string) ([]*Contract, error)
}
