package wallet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/questforge/shopkeeper-service/internal/domain"
)

// HTTPLedgerHandler reaches the external economy provider over its
// wallet HTTP API. It implements domain.LedgerPort and keeps the two
// failure classes apart: an insufficient-funds refusal comes back as
// ErrInsufficientFunds, everything else (transport errors, 5xx) as
// ErrLedgerUnavailable so the trade engine can roll back and let the
// caller retry.
type HTTPLedgerHandler struct {
	Address string
}

func NewHTTPLedgerHandler(address string) (*HTTPLedgerHandler, error) {
	return &HTTPLedgerHandler{
		Address: address,
	}, nil
}

func (h *HTTPLedgerHandler) BalanceOf(participant string) (int64, error) {
	response, err := http.Get(fmt.Sprintf("%s/wallets/%s/balance", h.Address, participant))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var balance balanceResponse
		if err := json.Unmarshal(responseBodyBytes, &balance); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
		}
		return balance.Balance, nil
	}
	return 0, h.classify(response.StatusCode, responseBodyBytes)
}

func (h *HTTPLedgerHandler) Debit(participant string, amount int64) error {
	return h.post("debit", participant, amount)
}

func (h *HTTPLedgerHandler) Credit(participant string, amount int64) error {
	return h.post("credit", participant, amount)
}

func (h *HTTPLedgerHandler) post(op, participant string, amount int64) error {
	requestBodyBytes, err := json.Marshal(transferRequest{
		Participant: participant,
		Amount:      amount,
	})
	if err != nil {
		return err
	}

	response, err := http.Post(fmt.Sprintf("%s/wallets/%s", h.Address, op), "application/json", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	return h.classify(response.StatusCode, responseBodyBytes)
}

func (h *HTTPLedgerHandler) classify(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return fmt.Errorf("%w: status %d", domain.ErrLedgerUnavailable, statusCode)
	}
	if errResp.Code == "INSUFFICIENT_FUNDS" || statusCode == http.StatusPaymentRequired {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientFunds, errResp.Error)
	}
	return fmt.Errorf("%w: %s", domain.ErrLedgerUnavailable, errResp.Error)
}
