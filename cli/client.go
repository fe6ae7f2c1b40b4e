package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the Maitred API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a new API client. The server address comes from
// MAITRED_API, defaulting to a local instance.
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("MAITRED_API")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &ApiClient{
		httpClient: &http.Client{
			// Chat turns wait on a language model, so this is generous.
			Timeout: time.Second * 30,
		},
		BaseURL: baseURL,
	}
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}

	return true, nil
}

// MenuItem mirrors a menu entry served by the API
type MenuItem struct {
	Code        string `json:"item_code"`
	Name        string `json:"dish_name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Available   bool   `json:"available"`
}

// Order mirrors an order record served by the API
type Order struct {
	ID              string    `json:"order_id"`
	CustomerName    string    `json:"customer_name"`
	ServiceLocation string    `json:"service_location"`
	ContactPhone    string    `json:"contact_phone"`
	ItemCodes       []string  `json:"ordered_items"`
	Subtotal        string    `json:"subtotal"`
	Tax             string    `json:"tax"`
	GrandTotal      string    `json:"grand_total"`
	Timestamp       time.Time `json:"timestamp"`
	Status          string    `json:"status"`
}

// ChatReply mirrors one conversation turn from the API
type ChatReply struct {
	SessionID   string       `json:"session_id"`
	Text        string       `json:"text"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// ToolResult mirrors an executed tool call inside a chat reply
type ToolResult struct {
	Tool    string          `json:"tool"`
	Outcome json.RawMessage `json:"outcome,omitempty"`
	Err     string          `json:"error,omitempty"`
}

// DispatchResult mirrors the outcome of sending an order to the kitchen
type DispatchResult struct {
	OrderID       string `json:"order_id"`
	Recipient     string `json:"recipient"`
	Body          string `json:"body"`
	Delivered     bool   `json:"delivered"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// GetMenu retrieves the menu, optionally filtered by category
func (c *ApiClient) GetMenu(category string) ([]MenuItem, error) {
	url := c.BaseURL + "/api/v1/menu"
	if category != "" {
		url += "?category=" + category
	}

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var envelope struct {
		Items []MenuItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	return envelope.Items, nil
}

// GetOrders retrieves all orders
func (c *ApiClient) GetOrders() ([]Order, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/orders")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var envelope struct {
		Orders []Order `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}

	return envelope.Orders, nil
}

// Chat sends one conversation turn. An empty session id starts a new
// session; the reply carries the id to continue it.
func (c *ApiClient) Chat(sessionID, message string) (*ChatReply, error) {
	payload, err := json.Marshal(map[string]string{
		"session_id": sessionID,
		"message":    message,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/chat", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var reply ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// DispatchOrder sends an order to the kitchen
func (c *ApiClient) DispatchOrder(id string) (*DispatchResult, error) {
	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/orders/"+id+"/dispatch", "application/json", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result DispatchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// apiError turns a non-200 response into an error carrying the server's
// message when it sent one.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		return fmt.Errorf("%s", envelope.Error)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
