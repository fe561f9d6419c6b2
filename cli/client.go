package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the drive-thru service.
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a new API client.
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("DRIVETHRU_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 60,
		},
		BaseURL: baseURL,
	}
}

// CheckHealth checks if the API is up and running.
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

// OrderLine is one entry in the cart.
type OrderLine struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Details  string `json:"details,omitempty"`
}

// ChatResponse is the reply for one chat turn.
type ChatResponse struct {
	Reply  string      `json:"reply"`
	Status string      `json:"status"`
	Order  []OrderLine `json:"order"`
	Total  float64     `json:"total"`
}

// ConfirmResponse is the outcome of confirming the order.
type ConfirmResponse struct {
	Confirmation string      `json:"confirmation"`
	Placed       []OrderLine `json:"placed"`
	Total        float64     `json:"total"`
}

func (c *ApiClient) postJSON(path string, payload, out interface{}) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}

	resp, err := c.httpClient.Post(c.BaseURL+path, "application/json", &body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("request failed with status code: %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// CreateSession starts a kiosk session and returns its ID.
func (c *ApiClient) CreateSession() (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	if err := c.postJSON("/api/v1/sessions", nil, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// SendChat forwards one utterance and returns the assistant reply.
func (c *ApiClient) SendChat(sessionID, message string) (*ChatResponse, error) {
	var resp ChatResponse
	payload := map[string]string{"message": message}
	if err := c.postJSON("/api/v1/sessions/"+sessionID+"/chat", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConfirmOrder places the current cart.
func (c *ApiClient) ConfirmOrder(sessionID string) (*ConfirmResponse, error) {
	var resp ConfirmResponse
	if err := c.postJSON("/api/v1/sessions/"+sessionID+"/confirm", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearOrder empties the current cart.
func (c *ApiClient) ClearOrder(sessionID string) error {
	return c.postJSON("/api/v1/sessions/"+sessionID+"/clear", nil, nil)
}
