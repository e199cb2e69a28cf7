package domain

import (
	"context"

	"github.com/stayware/hotel-system/shared/models"
)

// RoomStatus is the availability status reported by the room service.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// RoomSnapshot is the room service's view of one room at validation time.
type RoomSnapshot struct {
	ID        models.ID    `json:"id"`
	Number    string       `json:"number"`
	BasePrice models.Money `json:"base_price"`
	Status    RoomStatus   `json:"status"`
}

// Customer is the customer service's view of one customer.
type Customer struct {
	ID    models.ID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// RoomDirectory is the room service collaborator, used to validate room
// availability at booking-create and deposit time.
type RoomDirectory interface {
	GetAllRooms(ctx context.Context) ([]RoomSnapshot, error)
}

// CustomerDirectory is the customer service collaborator, used to validate
// booking ownership. A nil customer with nil error means not found.
type CustomerDirectory interface {
	FindByID(ctx context.Context, id models.ID) (*Customer, error)
}
