package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apptbook/internal/database"
	"apptbook/internal/domain"
	"apptbook/internal/middleware"
	"apptbook/internal/modules/appointment"
	"apptbook/internal/modules/auth"
	"apptbook/internal/modules/catalog"
	"apptbook/internal/modules/payment"
	"apptbook/internal/modules/schedule"
	jwtsvc "apptbook/internal/pkg/jwt"
	"apptbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const webhookSecret = "whsec_test_secret"

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
	adminToken string
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// fakeCheckoutClient stands in for the Stripe API in tests.
type fakeCheckoutClient struct{}

func (fakeCheckoutClient) NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return &stripe.CheckoutSession{
		ID:  "cs_test_123",
		URL: "https://checkout.stripe.test/c/cs_test_123",
	}, nil
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	err = database.Migrate(db, repository.AllModels()...)
	require.NoError(t, err, "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authService := auth.NewService(userRepo, jwtService)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	scheduleService := schedule.NewService(scheduleRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	appointmentService := appointment.NewService(appointmentRepo, scheduleRepo, serviceRepo, userRepo)
	appointmentHandler := appointment.NewHandler(appointmentService)

	paymentService := payment.NewService(
		appointmentRepo,
		appointmentService,
		serviceRepo,
		fakeCheckoutClient{},
		payment.Config{
			SuccessURL: "http://localhost/success",
			CancelURL:  "http://localhost/cancel",
		},
	)
	paymentHandler := payment.NewHandler(paymentService, webhookSecret, 5*time.Minute)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	catalogHandler.RegisterPublicRoutes(v1)
	scheduleHandler.RegisterPublicRoutes(v1)
	appointmentHandler.RegisterPublicRoutes(v1)
	paymentHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.Auth(jwtService))
	{
		appointmentHandler.RegisterProtectedRoutes(protected)
		paymentHandler.RegisterProtectedRoutes(protected)
	}

	admin := v1.Group("/")
	admin.Use(middleware.Auth(jwtService), middleware.AdminOnly())
	{
		catalogHandler.RegisterAdminRoutes(admin)
		scheduleHandler.RegisterAdminRoutes(admin)
		appointmentHandler.RegisterAdminRoutes(admin)
	}

	// Seed and sign in the admin.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	adminUser := &domain.User{
		Name:         "Admin",
		Email:        "admin@test.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	require.NoError(t, userRepo.Create(context.Background(), adminUser), "Failed to create admin user")

	adminToken, err := jwtService.GenerateToken(adminUser.ID, string(domain.RoleAdmin))
	require.NoError(t, err)

	return &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
		adminToken: adminToken,
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

// registerClient signs up a fresh client and returns its token.
func (s *E2ETestSuite) registerClient(t *testing.T, email string) string {
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"name":     "Test Client",
		"email":    email,
		"phone":    "+15550100001",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "registration failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// seedCatalog creates one service and a Monday 09:00-11:00 schedule through
// the admin API, returning the service ID.
func (s *E2ETestSuite) seedCatalog(t *testing.T) int64 {
	w := s.makeRequest("POST", "/api/v1/services", map[string]interface{}{
		"name":            "Consultation",
		"price":           50.0,
		"duration":        30,
		"stripe_price_id": "price_test_123",
	}, s.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, "service creation failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	svc := resp.Data["service"].(map[string]interface{})
	serviceID := int64(svc["id"].(float64))

	w = s.makeRequest("POST", "/api/v1/schedules", map[string]interface{}{
		"day_of_week":  "Monday",
		"start_time":   "09:00",
		"end_time":     "11:00",
		"is_available": true,
	}, s.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, "schedule creation failed: %s", w.Body.String())

	return serviceID
}

// 04-01-2027 is a Monday.
const testDate = "04-01-2027"

func TestFlow_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.registerClient(t, "client@test.local")
	assert.NotEmpty(t, token)

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"name":     "Another",
			"email":    "client@test.local",
			"phone":    "+15550100002",
			"password": "password123",
		}, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)
	})

	t.Run("login with correct password", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "client@test.local",
			"password": "password123",
		}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "client@test.local",
			"password": "wrong",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	})

	t.Run("protected route rejects missing token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/appointments", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin route rejects client token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/admin/appointments", nil, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFlow_AvailabilityAndBooking(t *testing.T) {
	suite := setupTestSuite(t)
	serviceID := suite.seedCatalog(t)
	token := suite.registerClient(t, "client@test.local")

	t.Run("available slots for scheduled day", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/appointments/available?date="+testDate, nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		slots := resp.Data["available_slots"].([]interface{})
		assert.Equal(t, []interface{}{"09:00", "09:30", "10:00", "10:30", "11:00"}, slots)
	})

	t.Run("no schedule means no slots", func(t *testing.T) {
		// 05-01-2027 is a Tuesday with no schedule row.
		w := suite.makeRequest("GET", "/api/v1/appointments/available?date=05-01-2027", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Empty(t, resp.Data["available_slots"])
	})

	t.Run("book a free slot", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id": serviceID,
			"date":       testDate,
			"time":       "10:00",
		}, token)

		require.Equal(t, http.StatusCreated, w.Code, "booking failed: %s", w.Body.String())
		resp := parseResponse(t, w)
		appt := resp.Data["appointment"].(map[string]interface{})
		assert.Equal(t, "PENDING", appt["status"])
		assert.Equal(t, "10:00", appt["time"])
	})

	t.Run("booked slot disappears from availability", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/appointments/available?date="+testDate, nil, "")

		resp := parseResponse(t, w)
		slots := resp.Data["available_slots"].([]interface{})
		assert.Equal(t, []interface{}{"09:00", "09:30", "10:30", "11:00"}, slots)
	})

	t.Run("double booking rejected", func(t *testing.T) {
		other := suite.registerClient(t, "other@test.local")

		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id": serviceID,
			"date":       testDate,
			"time":       "10:00",
		}, other)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "SLOT_TAKEN", resp.Error.Code)
	})

	t.Run("time outside window rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id": serviceID,
			"date":       testDate,
			"time":       "14:00",
		}, token)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown service rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id": 9999,
			"date":       testDate,
			"time":       "09:00",
		}, token)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "SERVICE_NOT_FOUND", resp.Error.Code)
	})
}

func TestFlow_CancelFreesSlot(t *testing.T) {
	suite := setupTestSuite(t)
	serviceID := suite.seedCatalog(t)
	token := suite.registerClient(t, "client@test.local")

	w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
		"service_id": serviceID,
		"date":       testDate,
		"time":       "09:30",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	apptID := int64(resp.Data["appointment"].(map[string]interface{})["id"].(float64))

	t.Run("another client cannot cancel it", func(t *testing.T) {
		other := suite.registerClient(t, "other@test.local")
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/appointments/%d/cancel", apptID), nil, other)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner cancels", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/appointments/%d/cancel", apptID), nil, token)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		appt := resp.Data["appointment"].(map[string]interface{})
		assert.Equal(t, "CANCELLED", appt["status"])
	})

	t.Run("cancelling twice rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/appointments/%d/cancel", apptID), nil, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("slot is bookable again", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
			"service_id": serviceID,
			"date":       testDate,
			"time":       "09:30",
		}, token)

		assert.Equal(t, http.StatusCreated, w.Code, "rebooking failed: %s", w.Body.String())
	})
}

func TestFlow_PaymentConfirmsAppointment(t *testing.T) {
	suite := setupTestSuite(t)
	serviceID := suite.seedCatalog(t)
	token := suite.registerClient(t, "client@test.local")

	w := suite.makeRequest("POST", "/api/v1/appointments", map[string]interface{}{
		"service_id": serviceID,
		"date":       testDate,
		"time":       "10:00",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	apptID := int64(resp.Data["appointment"].(map[string]interface{})["id"].(float64))

	t.Run("pay endpoint returns checkout URL without confirming", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/appointments/%d/pay", apptID), nil, token)

		require.Equal(t, http.StatusCreated, w.Code, "pay failed: %s", w.Body.String())
		resp := parseResponse(t, w)
		checkout := resp.Data["checkout"].(map[string]interface{})
		assert.Equal(t, "https://checkout.stripe.test/c/cs_test_123", checkout["checkout_url"])

		// Still PENDING: only the webhook confirms.
		assert.Equal(t, "PENDING", suite.appointmentStatus(t, token, apptID))
	})

	t.Run("webhook with bad signature rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/webhooks/stripe", bytes.NewBufferString(`{}`))
		req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("signed checkout.session.completed confirms", func(t *testing.T) {
		payload, err := json.Marshal(map[string]interface{}{
			"id":          "evt_test_1",
			"object":      "event",
			"created":     time.Now().Unix(),
			"type":        "checkout.session.completed",
			"api_version": stripe.APIVersion,
			"data": map[string]interface{}{
				"object": map[string]interface{}{
					"id":     "cs_test_123",
					"object": "checkout.session",
					"metadata": map[string]interface{}{
						"appointment_id": fmt.Sprintf("%d", apptID),
					},
				},
			},
		})
		require.NoError(t, err)

		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload:   payload,
			Secret:    webhookSecret,
			Timestamp: time.Now(),
			Scheme:    "v1",
		})

		req := httptest.NewRequest("POST", "/api/v1/webhooks/stripe", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Stripe-Signature", signed.Header)
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "webhook failed: %s", w.Body.String())
		assert.Equal(t, "CONFIRMED", suite.appointmentStatus(t, token, apptID))
	})

	t.Run("paying a confirmed appointment rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/appointments/%d/pay", apptID), nil, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestFlow_ScheduleConflicts(t *testing.T) {
	suite := setupTestSuite(t)
	suite.seedCatalog(t)

	t.Run("second schedule for same day rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/schedules", map[string]interface{}{
			"day_of_week":  "Monday",
			"start_time":   "12:00",
			"end_time":     "15:00",
			"is_available": true,
		}, suite.adminToken)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "DAY_ALREADY_SCHEDULED", resp.Error.Code)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/schedules", map[string]interface{}{
			"day_of_week":  "Tuesday",
			"start_time":   "18:00",
			"end_time":     "09:00",
			"is_available": true,
		}, suite.adminToken)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// appointmentStatus reads the status of one appointment through the list API.
func (s *E2ETestSuite) appointmentStatus(t *testing.T, token string, apptID int64) string {
	w := s.makeRequest("GET", "/api/v1/appointments", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	rows := resp.Data["appointments"].([]interface{})
	for _, r := range rows {
		row := r.(map[string]interface{})
		if int64(row["id"].(float64)) == apptID {
			return row["status"].(string)
		}
	}
	t.Fatalf("appointment %d not found in list", apptID)
	return ""
}
