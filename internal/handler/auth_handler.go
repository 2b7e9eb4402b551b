package handler

import (
	"errors"
	"net/http"
	"time"

	"telemed-service/internal/model"
	"telemed-service/internal/repository"
	"telemed-service/internal/service"
	"telemed-service/pkg/logger"
	"telemed-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	registration service.RegistrationService
	auth         service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(registration service.RegistrationService, auth service.AuthService) *AuthHandler {
	return &AuthHandler{registration: registration, auth: auth}
}

// Request payloads, validated at the boundary before any domain logic runs

type registerPatientRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Village string `json:"village"`
	Phone   string `json:"phone"`
}

type registerDoctorRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Secret     string `json:"secret"`
	EmployeeID string `json:"employeeId"`
}

type registerHealthWorkerRequest struct {
	Name       string `json:"name"`
	Village    string `json:"village"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Secret     string `json:"secret"`
	EmployeeID string `json:"employeeId"`
}

type patientLoginRequest struct {
	Phone string `json:"phone"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
	EmployeeID string `json:"employeeId"`
	Role       string `json:"role"`
}

type stage1Request struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
	EmployeeID string `json:"employeeId"`
}

type verifyOtpRequest struct {
	UserID uint   `json:"userId"`
	Otp    string `json:"otp"`
}

// authResponse is the Created/authenticated envelope
type authResponse struct {
	OK    bool        `json:"ok"`
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// RegisterPatient handles POST /auth/register/patient
func (h *AuthHandler) RegisterPatient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRegistration(model.RolePatient)

	var req registerPatientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse patient registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	res, err := h.registration.RegisterPatient(c.Request().Context(), service.PatientRegistration{
		Name:    req.Name,
		Age:     req.Age,
		Gender:  req.Gender,
		Village: req.Village,
		Phone:   req.Phone,
	})
	if err != nil {
		return h.registrationError(c, log, err, "Patient with this phone number already exists")
	}

	prometheus.IncreaseActiveTokens()
	log.Info("Patient registered",
		zap.Uint("user_id", res.User.ID),
		zap.String("village", req.Village))

	return c.JSON(http.StatusCreated, authResponse{OK: true, Token: res.Token, User: newUserPayload(res.User, res.Profile)})
}

// RegisterDoctor handles POST /auth/register/doctor
func (h *AuthHandler) RegisterDoctor(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRegistration(model.RoleDoctor)

	var req registerDoctorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse doctor registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	res, err := h.registration.RegisterDoctor(c.Request().Context(), service.DoctorRegistration{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Password:   req.Secret,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		return h.registrationError(c, log, err, "Doctor with this email, phone, or employee ID already exists")
	}

	prometheus.IncreaseActiveTokens()
	log.Info("Doctor registered",
		zap.Uint("user_id", res.User.ID),
		zap.String("employee_id", req.EmployeeID))

	return c.JSON(http.StatusCreated, authResponse{OK: true, Token: res.Token, User: newUserPayload(res.User, res.Profile)})
}

// RegisterHealthWorker handles POST /auth/register/healthworker
func (h *AuthHandler) RegisterHealthWorker(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRegistration(model.RoleHealthWorker)

	var req registerHealthWorkerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse health worker registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	res, err := h.registration.RegisterHealthWorker(c.Request().Context(), service.HealthWorkerRegistration{
		Name:       req.Name,
		Village:    req.Village,
		Phone:      req.Phone,
		Email:      req.Email,
		Password:   req.Secret,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		return h.registrationError(c, log, err, "Health worker with this email, phone, or employee ID already exists")
	}

	prometheus.IncreaseActiveTokens()
	log.Info("Health worker registered",
		zap.Uint("user_id", res.User.ID),
		zap.String("employee_id", req.EmployeeID))

	return c.JSON(http.StatusCreated, authResponse{OK: true, Token: res.Token, User: newUserPayload(res.User, res.Profile)})
}

// LoginPatient handles POST /auth/login/patient: direct authentication by
// phone number, no secret.
func (h *AuthHandler) LoginPatient(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLogin(model.RolePatient)

	var req patientLoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse patient login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	res, err := h.auth.LoginPatient(c.Request().Context(), req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Patient not found. Please register first."})
		}
		log.Error("Patient login failed", zap.Error(err))
		prometheus.RecordAuthError("login_failure")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	prometheus.IncreaseActiveTokens()
	log.Info("Patient logged in", zap.Uint("user_id", res.User.ID))

	return c.JSON(http.StatusOK, authResponse{OK: true, Token: res.Token, User: newUserPayload(res.User, nil)})
}

// Login handles POST /auth/login: direct credential check for doctors and
// health workers. The rejection is uniform; it never says whether the
// identifier exists.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	prometheus.RecordLogin(req.Role)

	defer prometheus.TrackDBOperation("query")(time.Now())
	res, err := h.auth.Login(c.Request().Context(), req.Identifier, req.Secret, req.EmployeeID, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			prometheus.RecordAuthError("invalid_credentials")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		log.Error("Login failed", zap.Error(err))
		prometheus.RecordAuthError("login_failure")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in",
		zap.Uint("user_id", res.User.ID),
		zap.String("role", res.User.Role))

	return c.JSON(http.StatusOK, authResponse{OK: true, Token: res.Token, User: newUserPayload(res.User, nil)})
}

// LoginStage1 handles POST /auth/login/stage1: the first half of the
// two-stage OTP flow. On success it returns only the user id; no token is
// ever issued here.
func (h *AuthHandler) LoginStage1(c echo.Context) error {
	log := logger.FromContext(c)

	var req stage1Request
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse stage1 login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	userID, err := h.auth.LoginStage1(c.Request().Context(), req.Identifier, req.Secret, req.EmployeeID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			prometheus.RecordAuthError("invalid_credentials")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid"})
		}
		log.Error("Stage1 login failed", zap.Error(err))
		prometheus.RecordAuthError("login_failure")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	prometheus.RecordOtp("issued")
	log.Info("Stage1 login passed, OTP issued", zap.Uint("user_id", userID))

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "userId": userID})
}

// RequestPatientOtp handles POST /auth/request-otp/patient, the legacy
// OTP-gated patient login entry point.
func (h *AuthHandler) RequestPatientOtp(c echo.Context) error {
	log := logger.FromContext(c)

	var req patientLoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse OTP request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	userID, err := h.auth.RequestPatientOtp(c.Request().Context(), req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Patient not found. Please register first."})
		}
		log.Error("OTP request failed", zap.Error(err))
		prometheus.RecordAuthError("otp_request_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "otp request failed"})
	}

	prometheus.RecordOtp("issued")
	log.Info("Patient OTP issued", zap.Uint("user_id", userID))

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "userId": userID})
}

// VerifyOtp handles POST /auth/verify-otp: the second half of the two-stage
// flow. Only a valid, unexpired, never-used code yields a token.
func (h *AuthHandler) VerifyOtp(c echo.Context) error {
	log := logger.FromContext(c)

	var req verifyOtpRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse OTP verification request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	res, err := h.auth.VerifyOtp(c.Request().Context(), req.UserID, req.Otp)
	if err != nil {
		if errors.Is(err, service.ErrOtpInvalid) {
			prometheus.RecordOtp("rejected")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "otp_invalid"})
		}
		if errors.Is(err, service.ErrUserNotFound) {
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user_not_found"})
		}
		log.Error("OTP verification failed", zap.Error(err))
		prometheus.RecordAuthError("otp_verification_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "otp verification failed"})
	}

	prometheus.RecordOtp("verified")
	prometheus.IncreaseActiveTokens()
	log.Info("OTP verified, user logged in", zap.Uint("user_id", res.User.ID))

	return c.JSON(http.StatusOK, authResponse{OK: true, Token: res.Token, User: newUserPayload(res.User, nil)})
}

// registrationError maps workflow outcomes to HTTP. Validation failures name
// the field; duplicates are explicit on registration paths since the caller
// has already demonstrated intent; storage faults stay generic.
func (h *AuthHandler) registrationError(c echo.Context, log *zap.Logger, err error, duplicateMessage string) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		prometheus.RecordAuthError("validation_failed")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message, "field": verr.Field})
	}
	if errors.Is(err, repository.ErrDuplicateIdentity) {
		prometheus.RecordAuthError("duplicate_identity")
		return c.JSON(http.StatusConflict, echo.Map{"error": duplicateMessage})
	}
	log.Error("Registration failed", zap.Error(err))
	prometheus.RecordAuthError("registration_failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed. Please try again."})
}
