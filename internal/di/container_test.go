package di

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vikask011/react-native/internal/handler"
	"github.com/vikask011/react-native/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// routeOnlyContainer has handlers without backing services, enough to
// exercise routing and the auth guard
func routeOnlyContainer(cfg *config.Config) *Container {
	return &Container{
		Config:         cfg,
		HealthHandler:  handler.NewHealthHandler(nil, nil),
		AuthHandler:    handler.NewAuthHandler(nil),
		EventHandler:   handler.NewEventHandler(nil),
		PaymentHandler: handler.NewPaymentHandler(nil),
		ProfileHandler: handler.NewProfileHandler(nil, nil),
	}
}

func request(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	router := routeOnlyContainer(&config.Config{App: config.AppConfig{Environment: "development"}}).Router()

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/events/abc", http.StatusBadRequest},
		{http.MethodPost, "/payment/create-order", http.StatusUnauthorized},
		{http.MethodPost, "/payment/verify", http.StatusUnauthorized},
		{http.MethodGet, "/profile", http.StatusUnauthorized},
		{http.MethodGet, "/profile/bookings", http.StatusUnauthorized},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if w := request(router, tt.method, tt.path); w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_ConfirmTestRoute(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		enabled    bool
		wantStatus int
	}{
		{"disabled", "development", false, http.StatusNotFound},
		{"enabled in development", "development", true, http.StatusUnauthorized},
		{"never in production", "production", true, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				App:     config.AppConfig{Environment: tt.env},
				Payment: config.PaymentConfig{TestConfirmEnabled: tt.enabled},
			}
			router := routeOnlyContainer(cfg).Router()
			if w := request(router, http.MethodPost, "/payment/confirm-test"); w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_CORSFromConfig(t *testing.T) {
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}}
	router := routeOnlyContainer(cfg).Router()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
