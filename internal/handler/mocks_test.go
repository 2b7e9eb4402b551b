package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"telemed-service/internal/model"
	"telemed-service/internal/service"

	"github.com/labstack/echo/v4"
)

type mockRegistrationService struct {
	registerPatientFn      func(ctx context.Context, req service.PatientRegistration) (*service.RegistrationResult, error)
	registerDoctorFn       func(ctx context.Context, req service.DoctorRegistration) (*service.RegistrationResult, error)
	registerHealthWorkerFn func(ctx context.Context, req service.HealthWorkerRegistration) (*service.RegistrationResult, error)
}

func (m *mockRegistrationService) RegisterPatient(ctx context.Context, req service.PatientRegistration) (*service.RegistrationResult, error) {
	return m.registerPatientFn(ctx, req)
}

func (m *mockRegistrationService) RegisterDoctor(ctx context.Context, req service.DoctorRegistration) (*service.RegistrationResult, error) {
	return m.registerDoctorFn(ctx, req)
}

func (m *mockRegistrationService) RegisterHealthWorker(ctx context.Context, req service.HealthWorkerRegistration) (*service.RegistrationResult, error) {
	return m.registerHealthWorkerFn(ctx, req)
}

type mockAuthService struct {
	loginPatientFn      func(ctx context.Context, phone string) (*service.AuthResult, error)
	loginFn             func(ctx context.Context, identifier, password, employeeID, role string) (*service.AuthResult, error)
	loginStage1Fn       func(ctx context.Context, identifier, password, employeeID string) (uint, error)
	requestPatientOtpFn func(ctx context.Context, phone string) (uint, error)
	verifyOtpFn         func(ctx context.Context, userID uint, code string) (*service.AuthResult, error)
}

func (m *mockAuthService) LoginPatient(ctx context.Context, phone string) (*service.AuthResult, error) {
	return m.loginPatientFn(ctx, phone)
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password, employeeID, role string) (*service.AuthResult, error) {
	return m.loginFn(ctx, identifier, password, employeeID, role)
}

func (m *mockAuthService) LoginStage1(ctx context.Context, identifier, password, employeeID string) (uint, error) {
	return m.loginStage1Fn(ctx, identifier, password, employeeID)
}

func (m *mockAuthService) RequestPatientOtp(ctx context.Context, phone string) (uint, error) {
	return m.requestPatientOtpFn(ctx, phone)
}

func (m *mockAuthService) VerifyOtp(ctx context.Context, userID uint, code string) (*service.AuthResult, error) {
	return m.verifyOtpFn(ctx, userID, code)
}

type mockProfileService struct {
	resolveFn func(ctx context.Context, userID uint) (*model.User, model.Profile, error)
}

func (m *mockProfileService) Resolve(ctx context.Context, userID uint) (*model.User, model.Profile, error) {
	return m.resolveFn(ctx, userID)
}

// postJSON runs an echo handler against a JSON POST body and returns the
// recorded response.
func postJSON(t *testing.T, handler echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}
