package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/models"
)

// RoomHTTPClient implements RoomDirectory against the room service REST API.
type RoomHTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewRoomHTTPClient creates a new RoomHTTPClient
func NewRoomHTTPClient(baseURL string, timeout time.Duration) *RoomHTTPClient {
	return &RoomHTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type roomResponse struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	BasePrice struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"base_price"`
	Status string `json:"status"`
}

// GetAllRooms fetches the room service's current room snapshot.
func (c *RoomHTTPClient) GetAllRooms(ctx context.Context) ([]domain.RoomSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rooms", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build rooms request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch rooms")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("room service returned status %d", resp.StatusCode)
	}

	var payload []roomResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode rooms response")
	}

	snapshots := make([]domain.RoomSnapshot, 0, len(payload))
	for _, room := range payload {
		id, err := models.NewID(room.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid room ID %q", room.ID)
		}

		snapshots = append(snapshots, domain.RoomSnapshot{
			ID:        id,
			Number:    room.Number,
			BasePrice: models.NewMoney(room.BasePrice.Amount, room.BasePrice.Currency),
			Status:    domain.RoomStatus(room.Status),
		})
	}

	return snapshots, nil
}

var _ domain.RoomDirectory = (*RoomHTTPClient)(nil)
