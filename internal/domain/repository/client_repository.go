package repository

import "github.com/paulinhof/assistencia-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	List() ([]entity.Client, error)
	GetByID(id string) (*entity.Client, error)
	Create(c *entity.Client) error
	Update(c *entity.Client) error
}
