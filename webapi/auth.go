package webapi

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterInput is the signup request body. The referral code is optional;
// an unknown code does not fail registration.
type RegisterInput struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	ReferralCode string `json:"referral_code" validate:"omitempty,max=20"`
}

// LoginInput carries credentials; identity is a username or an email.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthRoutes registers the public registration and login endpoints.
func AuthRoutes(app *fiber.App, svcs *Services) {
	app.Post("/register", Register(svcs))
	app.Post("/login", Login(svcs))
}

// Register creates a user account, wallet, and optional referral link.
func Register(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterInput](c)
		if err != nil {
			return nil
		}
		u, err := svcs.Referrals.Register(c.Context(), input.Username, input.Email, input.Password, input.ReferralCode)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Registration successful",
			Data:    fiber.Map{"id": u.ID, "username": u.Username, "email": u.Email},
		})
	}
}

// Login authenticates and returns a JWT.
func Login(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginInput](c)
		if err != nil {
			return nil
		}
		u, err := svcs.Auth.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		token, err := svcs.Auth.GenerateToken(u)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Success login",
			Data:    fiber.Map{"token": token},
		})
	}
}
