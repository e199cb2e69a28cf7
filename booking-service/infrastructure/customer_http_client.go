package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/stayware/hotel-system/booking-service/domain"
	"github.com/stayware/hotel-system/shared/models"
)

// CustomerHTTPClient implements CustomerDirectory against the customer
// service REST API.
type CustomerHTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewCustomerHTTPClient creates a new CustomerHTTPClient
func NewCustomerHTTPClient(baseURL string, timeout time.Duration) *CustomerHTTPClient {
	return &CustomerHTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type customerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FindByID fetches one customer. A 404 maps to (nil, nil).
func (c *CustomerHTTPClient) FindByID(ctx context.Context, id models.ID) (*domain.Customer, error) {
	url := fmt.Sprintf("%s/customers/%s", c.baseURL, id.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build customer request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch customer")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("customer service returned status %d", resp.StatusCode)
	}

	var payload customerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode customer response")
	}

	customerID, err := models.NewID(payload.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid customer ID %q", payload.ID)
	}

	return &domain.Customer{
		ID:    customerID,
		Name:  payload.Name,
		Email: payload.Email,
	}, nil
}

var _ domain.CustomerDirectory = (*CustomerHTTPClient)(nil)
