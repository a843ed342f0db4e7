package domain

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID        uuid.UUID `json:"client_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

type ClientRepository interface {
	CreateClient(client *Client) error
	GetClient(id uuid.UUID) (*Client, error)
	ListClients() ([]Client, error)
	DeleteClient(id uuid.UUID) error
}
