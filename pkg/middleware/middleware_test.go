package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeRedis is an in-memory RedisClient
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type stubVerifier struct {
	tokens map[string]int64
}

func (s stubVerifier) VerifyToken(token string) (int64, error) {
	if id, ok := s.tokens[token]; ok {
		return id, nil
	}
	return 0, errors.New("invalid token")
}

func TestJWTAuth(t *testing.T) {
	verifier := stubVerifier{tokens: map[string]int64{"good": 7}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID int64
	}{
		{"missing header", "", http.StatusUnauthorized, 0},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, 0},
		{"empty token", "Bearer ", http.StatusUnauthorized, 0},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, 0},
		{"valid token", "Bearer good", http.StatusOK, 7},
		{"lowercase scheme", "bearer good", http.StatusOK, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			var gotUserID int64
			router.GET("/profile", JWTAuth(verifier), func(c *gin.Context) {
				gotUserID, _ = GetUserID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if gotUserID != tt.wantUserID {
				t.Errorf("user id = %d, want %d", gotUserID, tt.wantUserID)
			}
			if tt.wantStatus == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Error("expected WWW-Authenticate: Bearer")
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Run("generates ID when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RequestID()(c)

		if GetRequestID(c) == "" {
			t.Error("Expected request ID to be set in context")
		}
		if w.Header().Get(RequestIDHeader) == "" {
			t.Error("Expected X-Request-ID response header")
		}
	})

	t.Run("reuses ID from header", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(RequestIDHeader, "req-123")

		RequestID()(c)

		if GetRequestID(c) != "req-123" {
			t.Errorf("Expected request ID 'req-123', got '%s'", GetRequestID(c))
		}
	})
}

func TestCORS(t *testing.T) {
	t.Run("wildcard preflight", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS(DefaultCORSConfig()))
		router.POST("/payment/verify", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/payment/verify", nil)
		req.Header.Set("Origin", "http://localhost:8081")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", w.Code)
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("Allow-Origin = %q, want *", w.Header().Get("Access-Control-Allow-Origin"))
		}
		if w.Header().Get("Access-Control-Max-Age") != "86400" {
			t.Errorf("Max-Age = %q, want 86400", w.Header().Get("Access-Control-Max-Age"))
		}
	})

	t.Run("allow-list", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"https://app.example.com"}
		router := gin.New()
		router.Use(CORS(cfg))
		router.GET("/events", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
			t.Errorf("Allow-Origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
		}

		req = httptest.NewRequest(http.MethodGet, "/events", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Errorf("unexpected Allow-Origin for disallowed origin: %q", w.Header().Get("Access-Control-Allow-Origin"))
		}
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func setupIdempotentRouter(rdb RedisClient, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextKeyUserID, int64(1))
		c.Next()
	})
	router.POST("/payment/create-order", Idempotency(IdempotencyConfig{Redis: rdb}), handler)
	return router
}

func postOrder(router *gin.Engine, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payment/create-order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysCompletedResponse(t *testing.T) {
	calls := 0
	router := setupIdempotentRouter(newFakeRedis(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"order_id": "order_1"})
	})

	first := postOrder(router, "k1", `{"event_id":1}`)
	second := postOrder(router, "k1", `{"event_id":1}`)

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if second.Code != first.Code || second.Body.String() != first.Body.String() {
		t.Errorf("replay = %d %s, want %d %s", second.Code, second.Body.String(), first.Code, first.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Error("expected Idempotent-Replayed header on replay")
	}
}

func TestIdempotency_KeyReusedWithDifferentBody(t *testing.T) {
	router := setupIdempotentRouter(newFakeRedis(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	postOrder(router, "k1", `{"event_id":1}`)
	w := postOrder(router, "k1", `{"event_id":2}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestIdempotency_InProgress(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data[IdempotencyKeyPrefix+"1:k1"] = `{"status":"processing","request_hash":"` +
		hashRequest(http.MethodPost, "/payment/create-order", []byte(`{"event_id":1}`)) + `"}`

	router := setupIdempotentRouter(rdb, func(c *gin.Context) {
		t.Error("handler must not run while the key is processing")
	})

	w := postOrder(router, "k1", `{"event_id":1}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestIdempotency_ServerErrorNotStored(t *testing.T) {
	rdb := newFakeRedis()
	calls := 0
	router := setupIdempotentRouter(rdb, func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusBadGateway, gin.H{"error": "gateway down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_id": "order_2"})
	})

	postOrder(router, "k1", `{"event_id":1}`)
	w := postOrder(router, "k1", `{"event_id":1}`)

	if calls != 2 {
		t.Errorf("handler called %d times, want 2", calls)
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	calls := 0
	router := setupIdempotentRouter(newFakeRedis(), func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	postOrder(router, "", `{}`)
	postOrder(router, "", `{}`)

	if calls != 2 {
		t.Errorf("handler called %d times, want 2", calls)
	}
}

func TestIdempotency_RedisDownFailsOpen(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")
	calls := 0
	router := setupIdempotentRouter(rdb, func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	w := postOrder(router, "k1", `{}`)
	if calls != 1 || w.Code != http.StatusOK {
		t.Errorf("calls = %d status = %d, want 1 and 200", calls, w.Code)
	}
}

func TestIdempotency_BodyTooLarge(t *testing.T) {
	calls := 0
	router := gin.New()
	router.POST("/payment/create-order", Idempotency(IdempotencyConfig{Redis: newFakeRedis(), MaxBodyBytes: 16}), func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	w := postOrder(router, "k1", `{"event_id":1,"padding":"aaaaaaaaaaaaaaaa"}`)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
	if calls != 0 {
		t.Errorf("handler called %d times, want 0", calls)
	}

	w = postOrder(router, "k2", `{"event_id":1}`)
	if w.Code != http.StatusOK || calls != 1 {
		t.Errorf("calls = %d status = %d, want 1 and 200", calls, w.Code)
	}
}

func TestIdempotency_RequireKey(t *testing.T) {
	router := gin.New()
	router.POST("/payment/create-order", Idempotency(IdempotencyConfig{Redis: newFakeRedis(), RequireKey: true}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	if w := postOrder(router, "", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("status without key = %d, want 400", w.Code)
	}
	if w := postOrder(router, "k1", `{}`); w.Code != http.StatusOK {
		t.Errorf("status with key = %d, want 200", w.Code)
	}
}
