package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type fundsRequest struct {
	UserID  string  `json:"user_id"`
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPPaymentClient talks to the payment provider. The provider is expected
// to treat order id as an idempotency key for every fund movement.
type HTTPPaymentClient struct {
	Address string
	client  *http.Client
}

func NewHTTPPaymentClient(address string) *HTTPPaymentClient {
	return &HTTPPaymentClient{
		Address: address,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *HTTPPaymentClient) GetBalance(userID string) (float64, error) {
	response, err := h.client.Get(fmt.Sprintf("%s/wallets/%s/balance", h.Address, userID))
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, err
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var balance balanceResponse
		if err := json.Unmarshal(responseBodyBytes, &balance); err != nil {
			return 0, err
		}
		return balance.Balance, nil
	}
	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
		return 0, err
	}
	return 0, errors.New(errResp.Error)
}

func (h *HTTPPaymentClient) Hold(userID, orderID string, amount float64) error {
	return h.post("/wallets/hold", fundsRequest{UserID: userID, OrderID: orderID, Amount: amount})
}

func (h *HTTPPaymentClient) Release(userID, orderID string, amount float64) error {
	return h.post("/wallets/release", fundsRequest{UserID: userID, OrderID: orderID, Amount: amount})
}

func (h *HTTPPaymentClient) Refund(userID, orderID string, amount float64) error {
	return h.post("/wallets/refund", fundsRequest{UserID: userID, OrderID: orderID, Amount: amount})
}

func (h *HTTPPaymentClient) post(path string, req fundsRequest) error {
	requestBodyBytes, err := json.Marshal(req)
	if err != nil {
		return err
	}

	response, err := h.client.Post(h.Address+path, "application/json", bytes.NewBuffer(requestBodyBytes))
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
