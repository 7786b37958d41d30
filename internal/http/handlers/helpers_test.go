package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/rogerio-castellano/inventory-billing/internal/alerts"
	"github.com/rogerio-castellano/inventory-billing/internal/auth"
	"github.com/rogerio-castellano/inventory-billing/internal/billing"
	"github.com/rogerio-castellano/inventory-billing/internal/events"
	handler "github.com/rogerio-castellano/inventory-billing/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-billing/internal/http/router"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/report"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "secret-admin"
	userEmail     = "clerk@example.com"
	userPassword  = "secret-user"
)

var (
	token     string
	userToken string

	productRepo  *repo.InMemoryProductRepository
	billRepo     *repo.InMemoryBillRepository
	movementRepo *repo.InMemoryMovementRepository
	userRepo     *repo.InMemoryUserRepository
	requestRepo  *repo.InMemoryAccessRequestRepository
	alertLog     *alerts.MemoryLog
	publisher    *events.RecordingPublisher

	ipCounter atomic.Int32
)

func init() {
	setupTestRepos()
	r := router.NewRouter()

	var err error
	if token, err = generateToken(r, adminEmail, adminPassword, models.RoleAdmin); err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	if userToken, err = generateToken(r, userEmail, userPassword, models.RoleUser); err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos() {
	auth.Configure("test-secret", 0)

	productRepo = repo.NewInMemoryProductRepository()
	billRepo = repo.NewInMemoryBillRepository(productRepo)
	movementRepo = repo.NewInMemoryMovementRepository()
	userRepo = repo.NewInMemoryUserRepository()
	requestRepo = repo.NewInMemoryAccessRequestRepository()
	alertLog = alerts.NewMemoryLog(nil)
	publisher = &events.RecordingPublisher{}

	handler.SetProductRepo(productRepo)
	handler.SetMovementRepo(movementRepo)
	handler.SetUserRepo(userRepo)
	handler.SetAccessRequestRepo(requestRepo)
	handler.SetAuthService(auth.NewService(userRepo))
	handler.SetBillingService(billing.NewService(productRepo, billRepo, movementRepo, alertLog, publisher))
	handler.SetReportService(report.NewService(productRepo, billRepo))
	handler.SetNotifier(alertLog)
	handler.SetHealthChecks(map[string]handler.HealthCheck{})

	for _, u := range []struct{ email, password, role string }{
		{adminEmail, adminPassword, models.RoleAdmin},
		{userEmail, userPassword, models.RoleUser},
	} {
		hash, _ := auth.HashPassword(u.password)
		_, _ = userRepo.Create(context.Background(), models.User{Email: u.email, PasswordHash: hash, Role: u.role})
	}
}

func clearAllProducts() {
	productRepo.Clear()
	billRepo.Clear()
	movementRepo.Clear()
	alertLog.Clear()
}

// nextIP gives each request its own client address so the login limiter
// does not leak between tests.
func nextIP() string {
	n := ipCounter.Add(1)
	return fmt.Sprintf("10.0.%d.%d", n/250, n%250+1)
}

func login(r http.Handler, email, password, role, ip string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handler.LoginRequest{Email: email, Password: password, Role: role})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("X-Real-IP", ip)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func generateToken(r http.Handler, email, password, role string) (string, error) {
	w := login(r, email, password, role, nextIP())
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with %d: %s", w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/product/add", token, p)
}

func createBill(r http.Handler, b handler.CreateBillRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/bill/create", token, b)
}

func getProduct(r http.Handler, sku string) handler.ProductResponse {
	w := doJSON(r, http.MethodGet, "/product/"+sku, "", nil)
	var p handler.ProductResponse
	_ = json.NewDecoder(w.Body).Decode(&p)
	return p
}

func listBills(r http.Handler) []models.Bill {
	w := doJSON(r, http.MethodGet, "/bill/", "", nil)
	var bills []models.Bill
	_ = json.NewDecoder(w.Body).Decode(&bills)
	return bills
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
