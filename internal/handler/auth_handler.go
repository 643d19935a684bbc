package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/secondchance/secondchance-backend/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type RegisterResponse struct {
	AuthToken string `json:"authtoken"`
	Email     string `json:"email"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
}

type UpdateProfileResponse struct {
	AuthToken string `json:"authtoken"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AuthToken string `json:"authtoken"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid json"))
	}
	if errs := validateRegister(&req); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ValidationResponse{Errors: errs})
	}

	tok, err := h.svc.Register(c.Request().Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("User already exists with this email"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("Internal server error"))
	}
	return c.JSON(http.StatusOK, RegisterResponse{AuthToken: tok, Email: req.Email})
}

func (h *AuthHandler) Update(c echo.Context) error {
	email := c.Request().Header.Get("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("Email not found in the request headers"))
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid json"))
	}
	if errs := validateProfileUpdate(&req); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ValidationResponse{Errors: errs})
	}

	tok, err := h.svc.UpdateProfile(c.Request().Context(), email, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("Internal server error"))
	}
	return c.JSON(http.StatusOK, UpdateProfileResponse{AuthToken: tok})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid json"))
	}

	tok, user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("User was not found"))
		case errors.Is(err, service.ErrWrongPassword):
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("Incorrect password"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("Internal server error"))
	}
	return c.JSON(http.StatusOK, LoginResponse{
		AuthToken: tok,
		UserName:  user.FirstName,
		UserEmail: user.Email,
	})
}

// Validation errors are collected, not short-circuited, so a client sees
// every problem with the request at once.

func validateRegister(req *RegisterRequest) []string {
	var errs []string
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, "email is required")
	} else if !strings.Contains(req.Email, "@") {
		errs = append(errs, "email is invalid")
	}
	if req.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

func validateProfileUpdate(req *UpdateProfileRequest) []string {
	var errs []string
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		errs = append(errs, "firstName must not be empty")
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		errs = append(errs, "lastName must not be empty")
	}
	if req.Password != nil && len(*req.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	return errs
}
