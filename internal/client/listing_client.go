package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/acctbay/acctbay-escrow-service/internal/domain"
)

type listingResponse struct {
	ID        string  `json:"id"`
	SellerID  string  `json:"seller_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Available bool    `json:"available"`
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

// HTTPListingClient reads the price/seller snapshot from the listing catalog
// and toggles listing availability when orders open and close.
type HTTPListingClient struct {
	Address string
	client  *http.Client
}

func NewHTTPListingClient(address string) *HTTPListingClient {
	return &HTTPListingClient{
		Address: address,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *HTTPListingClient) GetListing(listingID string) (*domain.Listing, error) {
	response, err := h.client.Get(fmt.Sprintf("%s/listings/%s", h.Address, listingID))
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var listing listingResponse
		if err := json.Unmarshal(responseBodyBytes, &listing); err != nil {
			return nil, err
		}
		return &domain.Listing{
			ID:        listing.ID,
			SellerID:  listing.SellerID,
			Title:     listing.Title,
			Price:     listing.Price,
			Currency:  listing.Currency,
			Available: listing.Available,
		}, nil
	}

	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
		return nil, err
	}
	return nil, errors.New(errResp.Error)
}

func (h *HTTPListingClient) SetAvailability(listingID string, available bool) error {
	requestBodyBytes, err := json.Marshal(availabilityRequest{Available: available})
	if err != nil {
		return err
	}

	response, err := h.client.Post(
		fmt.Sprintf("%s/listings/%s/availability", h.Address, listingID),
		"application/json",
		bytes.NewBuffer(requestBodyBytes),
	)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
		return err
	}
	return errors.New(errResp.Error)
}
