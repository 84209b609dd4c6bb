package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"shiningstar/internal/app/config"
	"shiningstar/internal/app/distance"
	"shiningstar/internal/app/distance/mocks"
	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/dto"
	"shiningstar/internal/app/filestore"
	"shiningstar/internal/app/middleware"
	"shiningstar/internal/app/payment"
	"shiningstar/internal/app/quote"
	"shiningstar/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testOrigin = "1650 Woodbourn St, Philadelphia, PA"

type testServer struct {
	router *gin.Engine
	store  *filestore.FileRepository
	cfg    *config.Config
}

func newTestServer(t *testing.T, resolver distance.Resolver, fallback string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := filestore.NewFileRepository(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageDriverFile},
		JWT: config.JWTConfig{
			Token:         "test-secret",
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
		Distance: config.DistanceConfig{
			Mode:     config.DistanceModeTable,
			Origin:   testOrigin,
			Timeout:  time.Second,
			Fallback: fallback,
		},
	}

	processor := payment.NewProcessor(store, payment.Business{Name: "Shining Star Cleaning Services"}, 0.08)
	h := NewHandler(store, quote.NewEngine(quote.DefaultPricingConfig()), resolver, nil, processor, cfg)
	auth := middleware.NewAuthMiddleware(nil, cfg)

	router := gin.New()
	h.RegisterRoutes(router, auth, NewAuthHandler(store, auth, cfg))
	return &testServer{router: router, store: store, cfg: cfg}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// login creates a user with the given role and returns its token.
func (s *testServer) login(t *testing.T, username string, r role.Role) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = s.store.CreateUser(context.Background(), ds.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Role:     r,
		Active:   true,
	})
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: username, Password: "secret-pass"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (s *testServer) seedService(t *testing.T, svc ds.Service) {
	t.Helper()
	_, err := s.store.CreateService(context.Background(), svc)
	require.NoError(t, err)
}

func fixedService(id string, price float64, available bool) ds.Service {
	return ds.Service{
		ID:              id,
		Name:            ds.LocalizedText{"en": id},
		Description:     ds.LocalizedText{"en": "test"},
		Price:           price,
		Duration:        60,
		Category:        "residential",
		Available:       available,
		CalculationType: ds.CalculationFixed,
	}
}

func ptr[T any](v T) *T { return &v }

// ============ Quotes ============

func TestCalculateQuote_Fixed(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), testOrigin, "100 Main St").Return(10.0, nil)

	s := newTestServer(t, resolver, config.FallbackReject)
	s.seedService(t, fixedService("window-cleaning", 50, true))

	rec := s.do(t, http.MethodPost, "/api/quote/calculate", dto.QuoteRequest{ServiceID: "window-cleaning", Address: "100 Main St"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 50.0, resp.ServiceCost)
	assert.Equal(t, 2.61, resp.TravelCost)
	assert.Equal(t, 52.61, resp.Subtotal)
	assert.Equal(t, 4.21, resp.Tax)
	assert.Equal(t, 56.82, resp.Total)
	assert.Equal(t, "USD", resp.Currency)
	assert.False(t, resp.DistanceFallback)
}

func TestCalculateQuote_Quantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(3.0, nil)

	s := newTestServer(t, resolver, config.FallbackReject)
	svc := fixedService("carpet-cleaning", 30, true)
	svc.CalculationType = ds.CalculationQuantity
	svc.Unit = ptr("rooms")
	s.seedService(t, svc)

	rec := s.do(t, http.MethodPost, "/api/quote/calculate", dto.QuoteRequest{ServiceID: "carpet-cleaning", Quantity: ptr(3.0), Address: "1 Elm St"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 90.0, resp.ServiceCost)
	assert.Equal(t, 0.0, resp.TravelCost)
	assert.Equal(t, 97.2, resp.Total)
}

func TestCalculateQuote_RejectedBeforeDistanceLookup(t *testing.T) {
	tests := []struct {
		name    string
		request dto.QuoteRequest
		status  int
	}{
		{
			name:    "unknown service",
			request: dto.QuoteRequest{ServiceID: "missing", Address: "1 Elm St"},
			status:  http.StatusNotFound,
		},
		{
			name:    "unavailable service",
			request: dto.QuoteRequest{ServiceID: "paused", Address: "1 Elm St"},
			status:  http.StatusConflict,
		},
		{
			name:    "missing quantity",
			request: dto.QuoteRequest{ServiceID: "per-room", Address: "1 Elm St"},
			status:  http.StatusBadRequest,
		},
		{
			name:    "missing address",
			request: dto.QuoteRequest{ServiceID: "per-room", Quantity: ptr(2.0)},
			status:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// no EXPECT: any Resolve call fails the test
			s := newTestServer(t, mocks.NewMockResolver(ctrl), config.FallbackReject)
			s.seedService(t, fixedService("paused", 50, false))
			perRoom := fixedService("per-room", 20, true)
			perRoom.CalculationType = ds.CalculationQuantity
			perRoom.Unit = ptr("rooms")
			s.seedService(t, perRoom)

			rec := s.do(t, http.MethodPost, "/api/quote/calculate", tt.request, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestCalculateQuote_DistanceFailure(t *testing.T) {
	t.Run("reject policy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mocks.NewMockResolver(ctrl)
		resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(0.0, context.DeadlineExceeded)

		s := newTestServer(t, resolver, config.FallbackReject)
		s.seedService(t, fixedService("window-cleaning", 50, true))

		rec := s.do(t, http.MethodPost, "/api/quote/calculate", dto.QuoteRequest{ServiceID: "window-cleaning", Address: "far away"}, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("zero policy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := mocks.NewMockResolver(ctrl)
		resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(0.0, ds.ErrDistanceUnavailable)

		s := newTestServer(t, resolver, config.FallbackZero)
		s.seedService(t, fixedService("window-cleaning", 50, true))

		rec := s.do(t, http.MethodPost, "/api/quote/calculate", dto.QuoteRequest{ServiceID: "window-cleaning", Address: "far away"}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp dto.QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.DistanceFallback)
		assert.Equal(t, 0.0, resp.TravelCost)
		assert.Equal(t, 54.0, resp.Total)
	})
}

func TestEstimateCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestServer(t, mocks.NewMockResolver(ctrl), config.FallbackReject)
	s.seedService(t, fixedService("a", 100, true))
	s.seedService(t, fixedService("b", 50, true))
	_, err := s.store.CreatePackage(context.Background(), ds.Package{
		ID:        "combo",
		Name:      ds.LocalizedText{"en": "Combo"},
		Services:  []string{"a", "b"},
		Price:     150,
		Discount:  10,
		Duration:  120,
		Available: true,
	})
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/api/quote", dto.EstimateRequest{Services: []string{"a"}, Packages: []string{"combo"}}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var est quote.Estimate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &est))
	assert.Len(t, est.Items, 2)
	assert.Equal(t, 235.0, est.TotalPrice)
	assert.Equal(t, 180, est.TotalDuration)

	rec = s.do(t, http.MethodPost, "/api/quote", dto.EstimateRequest{Packages: []string{"nope"}}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/quote", dto.EstimateRequest{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBindingErrors_UseJSONFieldNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestServer(t, mocks.NewMockResolver(ctrl), config.FallbackReject)

	rec := s.do(t, http.MethodPost, "/api/contact", dto.ContactRequest{Email: "not-an-email", Message: "hi"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Message)
	assert.ElementsMatch(t, []string{
		"name is required",
		"email must be a valid email address",
	}, resp.Errors)

	rec = s.do(t, http.MethodPost, "/api/quote/calculate", dto.QuoteRequest{ServiceID: "deep-cleaning"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"address is required"}, resp.Errors)
}

// ============ Catalog ============

func TestGetServices_Filters(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestServer(t, mocks.NewMockResolver(ctrl), config.FallbackReject)
	s.seedService(t, fixedService("deep-cleaning", 120, true))
	office := fixedService("office-cleaning", 200, false)
	office.Category = "commercial"
	s.seedService(t, office)

	var resp dto.ServiceListResponse
	rec := s.do(t, http.MethodGet, "/api/services", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)

	rec = s.do(t, http.MethodGet, "/api/services?available=true", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "deep-cleaning", resp.Services[0].ID)

	rec = s.do(t, http.MethodGet, "/api/services?category=commercial&query=OFFICE", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "office-cleaning", resp.Services[0].ID)

	rec = s.do(t, http.MethodGet, "/api/services/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============ Requests ============

func TestSubmitContactAndRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestServer(t, mocks.NewMockResolver(ctrl), config.FallbackReject)
	s.seedService(t, fixedService("deep-cleaning", 120, true))

	rec := s.do(t, http.MethodPost, "/api/contact", dto.ContactRequest{
		Name: "Jamie", Email: "jamie@example.com", Message: "Do you clean ovens?",
	}, "")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/contact", dto.ContactRequest{Name: "Jamie", Email: "not-an-email", Message: "hi"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/request", dto.ServiceRequestBody{
		Name: "Jamie", Email: "jamie@example.com", Phone: "215-555-0100", Services: []string{"deep-cleaning"},
	}, "")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/request", dto.ServiceRequestBody{
		Name: "Jamie", Email: "jamie@example.com", Phone: "215-555-0100", Services: []string{"ghost"},
	}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	requests, err := s.store.ListServiceRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, ds.RequestStatusPending, requests[0].Status)
}

// ============ Payments ============

func TestPaymentFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestServer(t, mocks.NewMockResolver(ctrl), config.FallbackReject)

	rec := s.do(t, http.MethodPost, "/api/payments/intent", dto.PaymentIntentRequest{Amount: 56.82}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var intent ds.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &intent))
	assert.Equal(t, int64(5682), intent.Amount)

	process := dto.ProcessPaymentRequest{
		PaymentMethodID: "pm_card_visa",
		Customer:        dto.CustomerRequest{Name: "Jamie"},
		Lines:           []dto.InvoiceLineRequest{{Name: "Window Cleaning", Quantity: "1", Rate: 50, Total: 50}},
		TravelCost:      2.61,
		DistanceMiles:   10,
	}
	rec = s.do(t, http.MethodPost, "/api/payments/"+intent.ID+"/process", process, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var processed dto.ProcessPaymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &processed))
	assert.Equal(t, ds.PaymentSucceeded, processed.Payment.Status)
	assert.Equal(t, 56.82, processed.Totals.Total)

	rec = s.do(t, http.MethodPost, "/api/payments/"+intent.ID+"/process", process, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, processed.DownloadURL, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), processed.Invoice)

	rec = s.do(t, http.MethodGet, "/api/invoice/INV-0", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
