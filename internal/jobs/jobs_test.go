package jobs_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"crm/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphqlStub(t *testing.T, data map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req["query"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestHeartbeatJob(t *testing.T) {
	server := graphqlStub(t, map[string]interface{}{"hello": "Hello from GraphQL!"})
	defer server.Close()

	logPath := filepath.Join(t.TempDir(), "heartbeat.txt")
	job := &jobs.HeartbeatJob{
		Client: jobs.NewClient(server.URL),
		Log:    jobs.NewSink(logPath),
	}
	require.NoError(t, job.Run(context.Background()))

	content := readLog(t, logPath)
	assert.Contains(t, content, "CRM is alive")
	assert.Contains(t, content, "GraphQL endpoint is responsive: Hello from GraphQL!")
}

func TestHeartbeatJob_EndpointDown(t *testing.T) {
	server := graphqlStub(t, nil)
	server.Close() // connection refused

	logPath := filepath.Join(t.TempDir(), "heartbeat.txt")
	job := &jobs.HeartbeatJob{
		Client: jobs.NewClient(server.URL),
		Log:    jobs.NewSink(logPath),
	}
	require.NoError(t, job.Run(context.Background()))

	content := readLog(t, logPath)
	assert.Contains(t, content, "CRM is alive")
	assert.Contains(t, content, "GraphQL endpoint check failed")
}

func TestLowStockJob(t *testing.T) {
	server := graphqlStub(t, map[string]interface{}{
		"updateLowStockProducts": map[string]interface{}{
			"success":         true,
			"message":         "Updated 2 products with low stock",
			"updatedProducts": []string{"Keyboard: 3 -> 13", "Mouse: 9 -> 19"},
		},
	})
	defer server.Close()

	logPath := filepath.Join(t.TempDir(), "lowstock.txt")
	job := &jobs.LowStockJob{
		Client: jobs.NewClient(server.URL),
		Log:    jobs.NewSink(logPath),
	}
	require.NoError(t, job.Run(context.Background()))

	content := readLog(t, logPath)
	assert.Contains(t, content, "Low Stock Update:")
	assert.Contains(t, content, "Success: true")
	assert.Contains(t, content, "Message: Updated 2 products with low stock")
	assert.Contains(t, content, "  Keyboard: 3 -> 13")
	assert.Contains(t, content, "  Mouse: 9 -> 19")
}

func TestLowStockJob_NoUpdates(t *testing.T) {
	server := graphqlStub(t, map[string]interface{}{
		"updateLowStockProducts": map[string]interface{}{
			"success":         true,
			"message":         "Updated 0 products with low stock",
			"updatedProducts": []string{},
		},
	})
	defer server.Close()

	logPath := filepath.Join(t.TempDir(), "lowstock.txt")
	job := &jobs.LowStockJob{
		Client: jobs.NewClient(server.URL),
		Log:    jobs.NewSink(logPath),
	}
	require.NoError(t, job.Run(context.Background()))

	assert.Contains(t, readLog(t, logPath), "No products updated")
}

func TestLowStockJob_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	logPath := filepath.Join(t.TempDir(), "lowstock.txt")
	job := &jobs.LowStockJob{
		Client: jobs.NewClient(server.URL),
		Log:    jobs.NewSink(logPath),
	}
	require.NoError(t, job.Run(context.Background()))

	content := readLog(t, logPath)
	assert.Contains(t, content, "Error: HTTP 500")
	assert.NotContains(t, content, "Low Stock Update:")
}

func TestOrderReminderJob(t *testing.T) {
	server := graphqlStub(t, map[string]interface{}{
		"orders": []map[string]interface{}{
			{"id": "order-1", "customer": map[string]string{"email": "alice@example.com"}},
			{"id": "order-2", "customer": map[string]string{"email": "bob@sample.org"}},
		},
	})
	defer server.Close()

	logPath := filepath.Join(t.TempDir(), "reminders.txt")
	job := &jobs.OrderReminderJob{
		Client: jobs.NewClient(server.URL),
		Log:    jobs.NewSink(logPath),
	}
	require.NoError(t, job.Run(context.Background()))

	content := readLog(t, logPath)
	assert.Contains(t, content, "Order Reminders:")
	assert.Contains(t, content, "Order ID: order-1, Customer Email: alice@example.com")
	assert.Contains(t, content, "Order ID: order-2, Customer Email: bob@sample.org")
}

func TestReportJob(t *testing.T) {
	server := graphqlStub(t, map[string]interface{}{
		"totalCustomers": 2,
		"totalOrders":    3,
		"totalRevenue":   150.5,
	})
	defer server.Close()

	logPath := filepath.Join(t.TempDir(), "report.txt")
	job := &jobs.ReportJob{
		Client: jobs.NewClient(server.URL),
		Log:    jobs.NewSink(logPath),
	}
	require.NoError(t, job.Run(context.Background()))

	assert.Contains(t, readLog(t, logPath), "Report: 2 customers, 3 orders, 150.50 revenue")
}

func TestClientRetries(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := jobs.NewClient(server.URL)
	client.Retries = 2

	_, err := client.Execute(context.Background(), `query { hello }`)
	assert.Error(t, err)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClientGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{{"message": "Cannot query field"}},
		})
	}))
	defer server.Close()

	client := jobs.NewClient(server.URL)
	_, err := client.Execute(context.Background(), `query { nope }`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot query field")
}

func TestSinkAppendsLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "sink.txt")
	sink := jobs.NewSink(logPath)

	require.NoError(t, sink.Append("first"))
	require.NoError(t, sink.Append("second\n"))

	assert.Equal(t, "first\nsecond\n", readLog(t, logPath))
}
