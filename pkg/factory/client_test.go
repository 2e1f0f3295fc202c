package factory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFulfillRequest() FulfillRequest {
	req := FulfillRequest{
		Diner: Diner{ID: 1, Name: "Test Diner", Email: "diner@example.com"},
	}
	req.Order.ID = 42
	req.Order.FranchiseID = 1
	req.Order.StoreID = 2
	req.Order.Items = []OrderLine{
		{MenuID: 1, Description: "Veggie", Price: 0.0038},
	}
	return req
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "Valid config",
			config: Config{
				BaseURL: "https://factory.example.com/api",
				APIKey:  "test-api-key",
			},
			wantErr: false,
		},
		{
			name: "Missing base URL",
			config: Config{
				APIKey: "test-api-key",
			},
			wantErr: true,
		},
		{
			name: "Missing API key",
			config: Config{
				BaseURL: "https://factory.example.com/api",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				require.NotNil(t, client)
			}
		})
	}
}

func TestClient_Fulfill_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/order", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req FulfillRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint(42), req.Order.ID)
		assert.Len(t, req.Order.Items, 1)

		json.NewEncoder(w).Encode(FulfillResponse{
			JWT:       "factory-jwt-token",
			ReportURL: "https://factory.example.com/report/42",
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
	})
	require.NoError(t, err)

	resp, err := client.Fulfill(context.Background(), testFulfillRequest())
	require.NoError(t, err)
	assert.Equal(t, "factory-jwt-token", resp.JWT)
	assert.Equal(t, "https://factory.example.com/report/42", resp.ReportURL)
}

func TestClient_Fulfill_FactoryRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "ovens are down"})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
	})
	require.NoError(t, err)

	resp, err := client.Fulfill(context.Background(), testFulfillRequest())
	assert.ErrorIs(t, err, ErrFulfillmentFailed)
	assert.Contains(t, err.Error(), "ovens are down")
	assert.Nil(t, resp)
}

func TestClient_Fulfill_NetworkError(t *testing.T) {
	// Server closed before the call so the dial fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
	})
	require.NoError(t, err)

	resp, err := client.Fulfill(context.Background(), testFulfillRequest())
	assert.ErrorIs(t, err, ErrNetworkError)
	assert.Nil(t, resp)
}

func TestClient_Fulfill_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(FulfillResponse{JWT: "late"})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	resp, err := client.Fulfill(context.Background(), testFulfillRequest())
	assert.ErrorIs(t, err, ErrNetworkError)
	assert.Nil(t, resp)
}
