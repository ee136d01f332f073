package api

import "github.com/gofiber/fiber/v2"

// Client-visible messages. The wording is part of the API contract and is
// matched verbatim by existing clients, so it never varies by internal
// failure subtype.
const (
	msgOK                       = "OK"
	msgWrongDataFormat          = "The data has the wrong format and the server can't understand it."
	msgInvalidData              = "The posted data has the correct format, but the data is invalid."
	msgIncorrectEmailOrPassword = "The e-mail or password is incorrect."
	msgDuplicateAccount         = "The account already exists."
	msgAbsentCookie             = "The specific cookie is absent."
	msgInvalidCookie            = "The specific cookie is invalid."
	msgUnauthorized             = "Unauthorized."
	msgAbsentItem               = "The specific item is absent."
	msgAbsentTag                = "The specific tag is absent."
	msgAbsentAvatar             = "The specific item has no avatar."
	msgDuplicateTag             = "The tag already exists in the database."
	msgInternalError            = "Internal Server Error"
)

// Message is the single-message response body {"message": ...}.
type Message struct {
	Message string `json:"message"`
}

func messageResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Message{Message: message})
}

func okResponse(c *fiber.Ctx) error {
	return messageResponse(c, fiber.StatusOK, msgOK)
}
