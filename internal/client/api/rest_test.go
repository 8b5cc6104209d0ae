package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vacstats/internal/client/models"
	"github.com/dmitrijs2005/vacstats/internal/logging"
)

// memStore is an in-memory session.Store for tests.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

func testLogger() logging.Logger {
	return logging.NewDefault(io.Discard, true)
}

func newClient(t *testing.T, srv *httptest.Server, store *memStore) *RESTClient {
	t.Helper()
	c := NewRESTClient(srv.URL, 2*time.Second, store, testLogger())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), "token", []byte("tok123")))

	c := newClient(t, srv, store)
	require.NoError(t, c.Health(context.Background()))
	require.Equal(t, "Bearer tok123", gotAuth)
	require.NotEmpty(t, gotReqID)
}

func TestNoBearerTokenWhenAbsent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv, newMemStore())
	require.NoError(t, c.Health(context.Background()))
	require.Empty(t, gotAuth)
}

func TestLoginDecodesAuthResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"email":"admin@example.com","password":"admin123"}`, string(body))
		w.Write([]byte(`{"access_token":"jwt1","user":{"email":"admin@example.com","first_name":"Admin","last_name":"User"}}`))
	}))
	defer srv.Close()

	c := newClient(t, srv, newMemStore())
	resp, err := c.Login(context.Background(), models.Credentials{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)
	require.Equal(t, "jwt1", resp.AccessToken)
	require.Equal(t, "Admin", resp.User.FirstName)
}

func TestUnauthorizedFiresHookAndClassifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token has expired"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv, newMemStore())
	fired := 0
	c.SetUnauthorizedHook(func() { fired++ })

	_, err := c.SummaryStats(context.Background())
	require.Error(t, err)
	require.Equal(t, KindUnauthorized, KindOf(err))
	require.Equal(t, 1, fired)

	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, http.StatusUnauthorized, ae.Status)
	require.Equal(t, "Token has expired", ae.ServerMessage)
	require.Equal(t, "Session expired. Please login again.", ae.UserMessage)
}

func TestUnauthorizedWinsOverServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"something specific","message":"also specific"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv, newMemStore())
	err := c.Logout(context.Background())
	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, KindUnauthorized, ae.Kind)
	require.Equal(t, "Session expired. Please login again.", ae.UserMessage)
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status   int
		wantKind Kind
		wantMsg  string
	}{
		{http.StatusForbidden, KindForbidden, "Access denied. Administrator privileges required."},
		{http.StatusNotFound, KindNotFound, "Service not found. Please try again later."},
		{http.StatusInternalServerError, KindServer, "Server error. Please try again later."},
		{http.StatusBadGateway, KindServer, "Server error. Please try again later."},
	}

	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		c := newClient(t, srv, newMemStore())

		_, err := c.TotalUsers(context.Background())
		var ae *Error
		require.ErrorAs(t, err, &ae, "status %d", tc.status)
		require.Equal(t, tc.wantKind, ae.Kind, "status %d", tc.status)
		require.Equal(t, tc.wantMsg, ae.UserMessage, "status %d", tc.status)
		srv.Close()
	}
}

func TestBadRequestFallsBackToServerText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Email and password required"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv, newMemStore())
	_, err := c.Login(context.Background(), models.Credentials{})
	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, KindUnknown, ae.Kind)
	require.Equal(t, "Email and password required", ae.UserMessage)
}

func TestBadRequestWithoutBodyUsesGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := newClient(t, srv, newMemStore())
	_, err := c.TotalLikes(context.Background())
	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, "Request failed. Please try again later.", ae.UserMessage)
}

func TestNetworkErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // server gone before the call

	c := NewRESTClient(srv.URL, time.Second, newMemStore(), testLogger())
	defer c.Close()

	_, err := c.SummaryStats(context.Background())
	require.Equal(t, KindNetwork, KindOf(err))
	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, "Network error. Please check your connection and try again.", ae.UserMessage)
}

func TestTimeoutClassification(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	c := NewRESTClient(srv.URL, 50*time.Millisecond, newMemStore(), testLogger())
	defer c.Close()

	_, err := c.VacationStats(context.Background())
	require.Equal(t, KindTimeout, KindOf(err))
	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, "Request timeout. Please check your connection and try again.", ae.UserMessage)
}

func TestStoreReadFailureLeavesRequestUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	store := newMemStore()
	store.getErr = io.ErrUnexpectedEOF

	c := newClient(t, srv, store)
	require.NoError(t, c.Health(context.Background()))
	require.Empty(t, gotAuth)
}

func TestHealthUnhealthyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"degraded"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv, newMemStore())
	require.ErrorIs(t, c.Health(context.Background()), ErrUnavailable)
}

func TestStatsEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stats/summary":
			w.Write([]byte(`{"vacationStats":{"pastVacations":1,"ongoingVacations":2,"futureVacations":3},"totalUsers":5,"totalLikes":10,"topDestinations":[{"destination":"Rome","likes":4},{"destination":"Paris","likes":3}]}`))
		case "/stats/vacations":
			w.Write([]byte(`{"pastVacations":7,"ongoingVacations":0,"futureVacations":1}`))
		case "/users/total":
			w.Write([]byte(`{"totalUsers":42}`))
		case "/likes/total":
			w.Write([]byte(`{"totalLikes":99}`))
		case "/likes/distribution":
			w.Write([]byte(`[{"destination":"Oslo","likes":2}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, newMemStore())
	ctx := context.Background()

	sum, err := c.SummaryStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, sum.TotalUsers)
	require.Equal(t, 10, sum.TotalLikes)
	require.Equal(t, 6, sum.VacationStats.Total())
	require.Equal(t, "Rome", sum.TopDestinationsByLikes(10)[0].Destination)

	vs, err := c.VacationStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 8, vs.Total())

	users, err := c.TotalUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, 42, users)

	likes, err := c.TotalLikes(ctx)
	require.NoError(t, err)
	require.Equal(t, 99, likes)

	dist, err := c.LikesDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, dist, 1)
	require.Equal(t, "Oslo", dist[0].Destination)
}
