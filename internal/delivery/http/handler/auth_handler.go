package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"
	ucauth "resume-match/internal/usecase/auth"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	uc     usecase.AuthUsecase
	cookie CookieConfig
}

func NewAuthHandler(uc usecase.AuthUsecase, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session"
	}
	return &AuthHandler{uc: uc, cookie: cookie}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.Bind().Body(&req); err != nil {
		if _, ok := dto.ValidationMessage(err); ok {
			return mapAuthUsecaseError(ucauth.ErrInvalidInput)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	sess, err := h.uc.Signup(c.Context(), ucauth.SignupInput{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.setSession(c, sess.Token, sess.ExpiresAt)
	return response.JSON(c, fiber.StatusOK, dto.SignupResponse{Email: sess.Account.Email, Message: "Signup successful"})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		// a login missing a field is just a bad login
		if _, ok := dto.ValidationMessage(err); ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	sess, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.setSession(c, sess.Token, sess.ExpiresAt)
	return response.JSON(c, fiber.StatusOK, dto.LoginResponse{Email: sess.Account.Email, Name: sess.Account.Name()})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return response.JSON(c, fiber.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	a, err := h.uc.CurrentUser(c.Context(), middleware.SessionToken(c))
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.MeResponse{
		Email:     a.Email,
		Name:      a.Name(),
		CallsMade: a.CallCount,
		CallLimit: a.CallLimit,
	})
}

func (h *AuthHandler) setSession(c fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expires,
	})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusBadRequest, "Email already registered", err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Email and password are required", err)
	case errors.Is(err, usecase.ErrNotLoggedIn):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not logged in", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
