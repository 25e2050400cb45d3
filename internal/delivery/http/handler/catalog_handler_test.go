package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/broadcast"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/memory"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLiveTrackingServer(t *testing.T, hub *broadcast.Hub) (*httptest.Server, *memory.OrderRepositoryMemory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orders := memory.NewOrderRepositoryMemory()
	requests := memory.NewRequestRepositoryMemory()
	h := NewTrackingHandler(usecase.NewTrackingUseCase(orders, requests), hub)

	engine := gin.New()
	engine.GET("/api/track/:number", h.Track)
	engine.GET("/api/track/:number/live", h.Live)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv, orders
}

// readEvent scans the stream up to the next "event:" line and returns its name.
func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		}
	}
}

func TestTrackingLive_StreamsHubEvents(t *testing.T) {
	hub := broadcast.NewHub()
	defer hub.Close()
	srv, orders := newLiveTrackingServer(t, hub)

	require.NoError(t, orders.Create(context.Background(), &entities.Order{
		ID:          "ord-1",
		OrderNumber: "EC123456001",
		UserID:      "user-1",
		Status:      entities.OrderStatusConfirmed,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/track/EC123456001/live", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)

	// The durable state comes first; once it arrives the subscription is
	// registered, so a publish from here on is guaranteed to be seen.
	assert.Equal(t, "snapshot", readEvent(t, reader))

	require.NoError(t, hub.Publish(context.Background(), "ord-1", "order.status_changed",
		usecase.TrackingEvent{EntityID: "ord-1", Status: "shipped"}))

	assert.Equal(t, "order.status_changed", readEvent(t, reader))
	cancel()
}

func TestTrackingLive_UnknownNumber(t *testing.T) {
	hub := broadcast.NewHub()
	defer hub.Close()
	srv, _ := newLiveTrackingServer(t, hub)

	resp, err := http.Get(srv.URL + "/api/track/EC000000000/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTrackingLive_UnavailableWithoutHub(t *testing.T) {
	srv, orders := newLiveTrackingServer(t, nil)

	require.NoError(t, orders.Create(context.Background(), &entities.Order{
		ID:          "ord-1",
		OrderNumber: "EC123456001",
		UserID:      "user-1",
	}))

	resp, err := http.Get(srv.URL + "/api/track/EC123456001/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The plain view stays served either way.
	resp, err = http.Get(srv.URL + "/api/track/EC123456001")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
