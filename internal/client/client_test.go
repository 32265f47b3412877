package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_MissingSecretFailsBeforeNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should reach the daemon without a secret")
	}))
	defer server.Close()

	c := New(server.URL, "")

	err := c.Confirm(context.Background(), "call-1", ActionAllowOnce)
	require.ErrorIs(t, err, ErrMissingSecret)

	_, err = c.Reply(context.Background(), ReplyRequest{SessionID: "s"})
	require.ErrorIs(t, err, ErrMissingSecret)

	err = c.UpsertConfig(context.Background(), "k", "v", false)
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestClient_MissingURL(t *testing.T) {
	c := New("", "secret")
	_, err := c.Providers(context.Background())
	require.ErrorIs(t, err, ErrMissingURL)
}

func TestClient_SecretHeaderSent(t *testing.T) {
	var gotSecret string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Secret-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, "hunter2")
	require.NoError(t, c.Confirm(context.Background(), "call-1", ActionDeny))

	require.Equal(t, "hunter2", gotSecret)
	require.Equal(t, map[string]string{
		"id":             "call-1",
		"action":         "deny",
		"principal_type": "Tool",
	}, gotBody)
}

func TestClient_ConfigReadsNeedNoSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("X-Secret-Key"))
		switch r.URL.Path {
		case "/agent/providers":
			_, _ = w.Write([]byte(`[{"name":"anthropic","models":["claude-sonnet-4"],"configured":true}]`))
		case "/config":
			_, _ = w.Write([]byte(`{"GOOSE_PROVIDER":"anthropic"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := New(server.URL, "")

	providers, err := c.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	require.Equal(t, "anthropic", providers[0].Name)
	require.True(t, providers[0].Configured)

	config, err := c.ReadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "anthropic", config["GOOSE_PROVIDER"])
}

func TestClient_NonOKCarriesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("provider not configured"))
	}))
	defer server.Close()

	c := New(server.URL, "secret")
	err := c.SetProvider(context.Background(), "anthropic", "claude-sonnet-4")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.Status)
	require.Equal(t, "provider not configured", apiErr.Body)
	require.NotErrorIs(t, err, ErrUnauthorized)
}

func TestClient_UnauthorizedIsDistinct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(server.URL, "")
	_, err := c.ReadConfig(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_ReplyStreamsBody(t *testing.T) {
	var gotReq ReplyRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reply", r.URL.Path)
		require.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {\"type\":\"Finish\",\"reason\":\"stop\"}\n\n"))
	}))
	defer server.Close()

	c := New(server.URL, "secret")
	body, err := c.Reply(context.Background(), ReplyRequest{
		SessionID:         "tether-1-abc",
		SessionWorkingDir: "/tmp/work",
	})
	require.NoError(t, err)
	defer body.Close()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "data: {\"type\":\"Finish\",\"reason\":\"stop\"}\n\n", string(raw))
	require.Equal(t, "tether-1-abc", gotReq.SessionID)
	require.Equal(t, "/tmp/work", gotReq.SessionWorkingDir)
}

func TestClient_ReplyNonOKClosesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("no provider selected"))
	}))
	defer server.Close()

	c := New(server.URL, "secret")
	_, err := c.Reply(context.Background(), ReplyRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "no provider selected", apiErr.Body)
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:3000/", "s")
	require.Equal(t, "http://localhost:3000", c.BaseURL())
}
