package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dstepanenko/storefront/internal/common"
	"github.com/dstepanenko/storefront/internal/server/models"
	"github.com/dstepanenko/storefront/internal/validation"
)

// claimsLocalKey is where the session middleware stores the decoded claims.
const claimsLocalKey = "claims"

// Pointer fields distinguish an absent key (wrong format, 400) from a
// present-but-invalid value (422).
type registerRequest struct {
	Email     *string `json:"e-mail"`
	Password  *string `json:"password"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Gender    *string `json:"gender"`
	Birthday  *string `json:"birthday"`
}

type loginRequest struct {
	Email    *string `json:"e-mail"`
	Password *string `json:"password"`
}

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return messageResponse(c, fiber.StatusBadRequest, msgWrongDataFormat)
	}
	if req.Email == nil || req.Password == nil || req.Firstname == nil ||
		req.Lastname == nil || req.Gender == nil || req.Birthday == nil {
		return messageResponse(c, fiber.StatusBadRequest, msgWrongDataFormat)
	}
	if !validation.ValidEmail(*req.Email) || !validation.ValidBirthday(*req.Birthday) {
		return messageResponse(c, fiber.StatusUnprocessableEntity, msgInvalidData)
	}

	birthday, err := validation.ParseBirthday(*req.Birthday)
	if err != nil {
		return messageResponse(c, fiber.StatusUnprocessableEntity, msgInvalidData)
	}

	profile := models.Profile{
		Firstname: *req.Firstname,
		Lastname:  *req.Lastname,
		Gender:    *req.Gender,
		Birthday:  birthday,
	}
	if _, err := s.users.Register(c.UserContext(), *req.Email, *req.Password, profile); err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return messageResponse(c, fiber.StatusForbidden, msgDuplicateAccount)
		}
		s.logger.Error(c.UserContext(), "register failed", "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}

	return okResponse(c)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return messageResponse(c, fiber.StatusBadRequest, msgWrongDataFormat)
	}
	if req.Email == nil || req.Password == nil {
		return messageResponse(c, fiber.StatusBadRequest, msgWrongDataFormat)
	}
	if !validation.ValidEmail(*req.Email) {
		return messageResponse(c, fiber.StatusUnprocessableEntity, msgInvalidData)
	}

	sess, err := s.users.Login(c.UserContext(), *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			return messageResponse(c, fiber.StatusForbidden, msgIncorrectEmailOrPassword)
		}
		s.logger.Error(c.UserContext(), "login failed", "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}

	// The cookie expiry attribute matches the expiry claim inside the token.
	c.Cookie(&fiber.Cookie{
		Name:    common.SessionCookieName,
		Value:   sess.Token,
		Expires: sess.ExpiresAt,
	})
	return okResponse(c)
}

func (s *Server) verifyJWT(c *fiber.Ctx) error {
	token := c.Cookies(common.SessionCookieName)
	if token == "" {
		return messageResponse(c, fiber.StatusUnauthorized, msgAbsentCookie)
	}

	claims, err := s.users.VerifySession(token)
	if err != nil {
		s.logger.Debug(c.UserContext(), "session rejected", "error", err)
		return messageResponse(c, fiber.StatusUnprocessableEntity, msgInvalidCookie)
	}

	return c.Status(fiber.StatusOK).JSON(claims)
}

func (s *Server) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:    common.SessionCookieName,
		Value:   "",
		Expires: time.Unix(0, 0),
	})
	return okResponse(c)
}

// sessionMiddleware guards the mutating catalog routes. Every failure mode
// (absent, expired, tampered, malformed) collapses into one uniform 401 so
// the response carries no oracle; the detail is only logged.
func (s *Server) sessionMiddleware(c *fiber.Ctx) error {
	claims, err := s.users.VerifySession(c.Cookies(common.SessionCookieName))
	if err != nil {
		s.logger.Debug(c.UserContext(), "session rejected", "error", err)
		return messageResponse(c, fiber.StatusUnauthorized, msgUnauthorized)
	}

	c.Locals(claimsLocalKey, claims)
	return c.Next()
}
