package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"crm-service/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSink(t *testing.T) (*Sink, func() string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job_log.txt")
	read := func() string {
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		return string(b)
	}
	return NewSink(path), read
}

func apiStub(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return client.New(srv.URL, 1, zap.NewNop())
}

func TestHeartbeatWritesLineWhenAPIIsUp(t *testing.T) {
	c := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	sink, read := newSink(t)

	job := NewHeartbeatJob(c, sink, zap.NewNop())
	require.NoError(t, job.Run(context.Background()))
	assert.Contains(t, read(), " CRM is alive\n")
}

func TestHeartbeatWritesLineEvenWhenAPIIsDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()
	c := client.New(srv.URL, 1, zap.NewNop())
	sink, read := newSink(t)

	job := NewHeartbeatJob(c, sink, zap.NewNop())
	require.NoError(t, job.Run(context.Background()))
	assert.Contains(t, read(), " CRM is alive\n")
}

func TestRestockJobAppendsResult(t *testing.T) {
	c := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/restock", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "2 products updated at 23/08/2026-10:00:00",
			"data": map[string]interface{}{
				"message": "2 products updated at 23/08/2026-10:00:00",
				"updated_products": []map[string]interface{}{
					{"id": 1, "name": "Widget", "price": 2.5, "stock": 13},
					{"id": 2, "name": "Gadget", "price": 4.0, "stock": 19},
				},
			},
		})
	})
	sink, read := newSink(t)

	job := NewRestockJob(c, sink, zap.NewNop())
	require.NoError(t, job.Run(context.Background()))

	got := read()
	assert.Contains(t, got, "2 products updated at 23/08/2026-10:00:00")
	assert.Contains(t, got, "| Widget: 13")
	assert.Contains(t, got, "| Gadget: 19")
}

func TestRestockJobLogsFailureWithoutError(t *testing.T) {
	c := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	sink, read := newSink(t)

	job := NewRestockJob(c, sink, zap.NewNop())
	require.NoError(t, job.Run(context.Background()))
	assert.Contains(t, read(), "Error:")
}

func TestReminderJobWritesOneLinePerOrder(t *testing.T) {
	c := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PENDING", r.URL.Query().Get("status"))
		assert.NotEmpty(t, r.URL.Query().Get("since"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "orders retrieved",
			"data": []map[string]interface{}{
				{"id": 7, "customer_id": 1, "customer_email": "ada@example.com", "status": "PENDING"},
				{"id": 9, "customer_id": 2, "customer_email": "may@example.com", "status": "PENDING"},
			},
		})
	})
	sink, read := newSink(t)

	job := NewReminderJob(c, sink, zap.NewNop())
	require.NoError(t, job.Run(context.Background()))

	got := read()
	assert.Contains(t, got, "Reminder for Order ID: 7, Customer Email: ada@example.com")
	assert.Contains(t, got, "Reminder for Order ID: 9, Customer Email: may@example.com")
}

func TestReminderJobEmptyWindowSucceeds(t *testing.T) {
	c := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "orders retrieved",
			"data":    []interface{}{},
		})
	})
	sink, _ := newSink(t)

	job := NewReminderJob(c, sink, zap.NewNop())
	require.NoError(t, job.Run(context.Background()))

	// No line expected; the file is only created on first append.
	_, err := os.Stat(sink.path)
	assert.True(t, os.IsNotExist(err))
}

func TestReminderJobReportsTransportFailure(t *testing.T) {
	c := apiStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	sink, read := newSink(t)

	job := NewReminderJob(c, sink, zap.NewNop())
	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, read(), "Error:")
}
