package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dstepanenko/storefront/internal/common"
)

type createTagRequest struct {
	Name *string `json:"name"`
}

func (s *Server) listTags(c *fiber.Ctx) error {
	tags, err := s.tags.List(c.UserContext())
	if err != nil {
		s.logger.Error(c.UserContext(), "tag listing failed", "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": len(tags), "tags": tags})
}

func (s *Server) createTag(c *fiber.Ctx) error {
	var req createTagRequest
	if status, ok := parseBody(c, &req); !ok {
		if status == fiber.StatusUnprocessableEntity {
			return messageResponse(c, status, msgInvalidData)
		}
		return messageResponse(c, status, msgWrongDataFormat)
	}
	if req.Name == nil {
		return messageResponse(c, fiber.StatusBadRequest, msgWrongDataFormat)
	}

	if _, err := s.tags.Create(c.UserContext(), *req.Name); err != nil {
		if errors.Is(err, common.ErrorDuplicateTag) {
			return messageResponse(c, fiber.StatusForbidden, msgDuplicateTag)
		}
		s.logger.Error(c.UserContext(), "tag create failed", "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	return okResponse(c)
}

func (s *Server) deleteTag(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return messageResponse(c, fiber.StatusForbidden, msgAbsentTag)
	}

	if err := s.tags.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return messageResponse(c, fiber.StatusForbidden, msgAbsentTag)
		}
		s.logger.Error(c.UserContext(), "tag delete failed", "id", id, "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	return okResponse(c)
}
