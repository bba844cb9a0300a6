package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	etcdhttp "github.com/fivetwenty-io/etcd-client/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2/keys/foo", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			writer.Header().Set("X-Etcd-Index", "42")
			response := map[string]string{"action": "get"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		client := etcdhttp.NewClient(nil)

		resp, err := client.Get(context.Background(), server.URL+"/v2/keys/foo")
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "42", resp.Headers.Get("X-Etcd-Index"))

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "get", result["action"])
	})

	t.Run("form body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PUT", request.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))

			_ = request.ParseForm()
			assert.Equal(t, "bar", request.PostForm.Get("value"))
			assert.Equal(t, "60", request.PostForm.Get("ttl"))

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := etcdhttp.NewClient(nil)

		form := url.Values{}
		form.Set("value", "bar")
		form.Set("ttl", "60")

		resp, err := client.PutForm(context.Background(), server.URL+"/v2/keys/foo", form)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("json body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string][]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, []string{"http://10.0.0.10:2380"}, body["peerURLs"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := etcdhttp.NewClient(nil)

		body, err := json.Marshal(map[string][]string{"peerURLs": {"http://10.0.0.10:2380"}})
		require.NoError(t, err)

		resp, err := client.PostJSON(context.Background(), server.URL+"/v2/members", body)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("basic auth", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			username, password, ok := request.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "root", username)
			assert.Equal(t, "secret", password)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := etcdhttp.NewClient(&etcdhttp.BasicAuth{Username: "root", Password: "secret"})

		resp, err := client.Get(context.Background(), server.URL+"/v2/keys/foo")
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("error status returns response without error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"errorCode": 100,
				"message":   "Key not found",
			})
		}))
		defer server.Close()

		client := etcdhttp.NewClient(nil)

		resp, err := client.Get(context.Background(), server.URL+"/v2/keys/missing")
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.Contains(t, string(resp.Body), "Key not found")
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := etcdhttp.NewClient(nil)

		req := &etcdhttp.Request{
			Method: "GET",
			URL:    server.URL + "/v2/keys/foo",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := etcdhttp.NewClient(nil, etcdhttp.WithLogger(logger), etcdhttp.WithDebug(true))

		_, err := client.Get(context.Background(), server.URL+"/v2/keys/foo")
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-agent/2.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := etcdhttp.NewClient(nil, etcdhttp.WithUserAgent("custom-agent/2.0"))

		resp, err := client.Get(context.Background(), server.URL+"/v2/keys/foo")
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*etcdhttp.Client, context.Context, string) (*etcdhttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *etcdhttp.Client, ctx context.Context, target string) (*etcdhttp.Response, error) {
				return c.Get(ctx, target)
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *etcdhttp.Client, ctx context.Context, target string) (*etcdhttp.Response, error) {
				return c.Delete(ctx, target)
			},
		},
		{
			name:   "PUT form",
			method: "PUT",
			fn: func(c *etcdhttp.Client, ctx context.Context, target string) (*etcdhttp.Response, error) {
				return c.PutForm(ctx, target, url.Values{"value": []string{"x"}})
			},
		},
		{
			name:   "POST form",
			method: "POST",
			fn: func(c *etcdhttp.Client, ctx context.Context, target string) (*etcdhttp.Response, error) {
				return c.PostForm(ctx, target, url.Values{"value": []string{"x"}})
			},
		},
		{
			name:   "PUT json",
			method: "PUT",
			fn: func(c *etcdhttp.Client, ctx context.Context, target string) (*etcdhttp.Response, error) {
				return c.PutJSON(ctx, target, []byte(`{}`))
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := etcdhttp.NewClient(nil)
			resp, err := testCase.fn(client, context.Background(), server.URL+"/test")
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("does not retry on 5xx statuses", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := etcdhttp.NewClient(nil, etcdhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), server.URL+"/test")
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, 1, attempts) // Statuses are never retried
	})

	t.Run("retries on connection errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		// Close immediately so connections are refused
		serverURL := server.URL
		server.Close()

		client := etcdhttp.NewClient(nil, etcdhttp.WithRetryConfig(2, 1*time.Millisecond, 5*time.Millisecond))

		_, err := client.Get(context.Background(), serverURL+"/test")
		require.Error(t, err)
	})

	t.Run("transport error without retries", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		serverURL := server.URL
		server.Close()

		client := etcdhttp.NewClient(nil)

		_, err := client.Get(context.Background(), serverURL+"/test")
		require.Error(t, err)
	})
}
