// Package explorer queries a block explorer's Etherscan-style account API
// for transaction history.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/log"
	"github.com/Klingon-tech/quai-shadow-wallet/internal/rpcclient"
	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
)

const noTransactions = "No transactions found"

// APIError is returned when the explorer answers with a non-success status.
type APIError struct {
	Message string
	Result  string
}

func (e *APIError) Error() string {
	if e.Result == "" {
		return fmt.Sprintf("explorer api error: %s", e.Message)
	}
	return fmt.Sprintf("explorer api error: %s | %s", e.Message, e.Result)
}

// Transaction is one entry of an address's history.
type Transaction struct {
	Hash        string
	BlockNumber uint64
	From        string
	To          string
	Value       *big.Int
	Timestamp   time.Time
	Failed      bool
}

// Client talks to the explorer API.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a client for the API endpoint, e.g. "https://quaiscan.io/api".
func New(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = rpcclient.DefaultTimeout
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type apiTx struct {
	Hash        string `json:"hash"`
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	IsError     string `json:"isError"`
}

// Transactions returns every transaction touching addr, oldest first. An
// address without history yields an empty slice and no error.
func (c *Client) Transactions(ctx context.Context, addr string) ([]Transaction, error) {
	q := url.Values{}
	q.Set("module", "account")
	q.Set("action", "txlist")
	q.Set("address", addr)
	q.Set("startblock", "0")
	q.Set("endblock", "99999999")
	q.Set("sort", "asc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	data, err := rpcclient.Do(c.http, req)
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode explorer response: %w", err)
	}

	if resp.Status == "0" && strings.Contains(resp.Message, noTransactions) {
		return []Transaction{}, nil
	}
	if resp.Status != "1" {
		return nil, &APIError{Message: resp.Message, Result: resultText(resp.Result)}
	}

	var raw []apiTx
	if err := json.Unmarshal(resp.Result, &raw); err != nil {
		return nil, fmt.Errorf("decode explorer transactions: %w", err)
	}

	txs := make([]Transaction, 0, len(raw))
	for _, r := range raw {
		tx, err := r.decode()
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", r.Hash, err)
		}
		txs = append(txs, tx)
	}
	log.Explorer.Debug().Str("address", addr).Int("count", len(txs)).Msg("Fetched history")
	return txs, nil
}

func (r apiTx) decode() (Transaction, error) {
	value, ok := new(big.Int).SetString(r.Value, 10)
	if !ok {
		return Transaction{}, fmt.Errorf("invalid value %q", r.Value)
	}
	tx := Transaction{
		Hash:   r.Hash,
		From:   r.From,
		To:     r.To,
		Value:  value,
		Failed: r.IsError == "1",
	}
	if r.TimeStamp != "" {
		sec, err := strconv.ParseInt(r.TimeStamp, 10, 64)
		if err != nil {
			return Transaction{}, fmt.Errorf("invalid timestamp %q", r.TimeStamp)
		}
		tx.Timestamp = time.Unix(sec, 0)
	}
	if r.BlockNumber != "" {
		n, err := strconv.ParseUint(r.BlockNumber, 10, 64)
		if err != nil {
			return Transaction{}, fmt.Errorf("invalid block number %q", r.BlockNumber)
		}
		tx.BlockNumber = n
	}
	return tx, nil
}

// resultText renders the result field of an error response. Explorers put a
// plain string there, but anything else is shown verbatim.
func resultText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}

// Received returns the transactions whose recipient is addr.
func Received(txs []Transaction, addr string) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if types.SameAddress(tx.To, addr) {
			out = append(out, tx)
		}
	}
	return out
}

// Sent returns the transactions whose sender is addr.
func Sent(txs []Transaction, addr string) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if types.SameAddress(tx.From, addr) {
			out = append(out, tx)
		}
	}
	return out
}
