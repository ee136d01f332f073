package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dstepanenko/storefront/internal/common"
	"github.com/dstepanenko/storefront/internal/server/models"
	"github.com/dstepanenko/storefront/internal/server/services"
)

type priceBody struct {
	Original *int64 `json:"original"`
	Discount *int64 `json:"discount"`
}

type createItemRequest struct {
	Name   *string    `json:"name"`
	Count  *int64     `json:"count"`
	Price  *priceBody `json:"price"`
	Avatar *string    `json:"avatar"`
	Tags   []int64    `json:"tags"`
}

type updateItemRequest struct {
	Name   *string    `json:"name"`
	Count  *int64     `json:"count"`
	Price  *priceBody `json:"price"`
	Avatar *string    `json:"avatar"`
	Tags   []int64    `json:"tags"`
}

// parseBody distinguishes structurally broken bodies (400) from bodies with
// the right shape but wrong value types (422).
func parseBody(c *fiber.Ctx, dst any) (int, bool) {
	if err := c.BodyParser(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fiber.StatusUnprocessableEntity, false
		}
		return fiber.StatusBadRequest, false
	}
	return 0, true
}

// itemID parses the path parameter. Anything that is not an integer cannot
// address an item, which the API reports the same way as a missing one.
func itemID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil
}

func (s *Server) listItems(c *fiber.Ctx) error {
	views, err := s.items.List(c.UserContext())
	if err != nil {
		s.logger.Error(c.UserContext(), "item listing failed", "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	return c.Status(fiber.StatusOK).JSON(views)
}

func (s *Server) getItem(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
	}

	view, err := s.items.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
		}
		s.logger.Error(c.UserContext(), "item fetch failed", "id", id, "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

func (s *Server) getItemCount(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
	}

	count, err := s.items.Count(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
		}
		s.logger.Error(c.UserContext(), "item count fetch failed", "id", id, "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

func (s *Server) createItem(c *fiber.Ctx) error {
	var req createItemRequest
	if status, ok := parseBody(c, &req); !ok {
		return messageResponse(c, status, msgWrongDataFormat)
	}
	if req.Name == nil || req.Count == nil || req.Price == nil || req.Tags == nil ||
		req.Price.Original == nil || req.Price.Discount == nil {
		return messageResponse(c, fiber.StatusBadRequest, msgWrongDataFormat)
	}

	item := &models.Item{
		Name:     *req.Name,
		Count:    *req.Count,
		Original: *req.Price.Original,
		Discount: *req.Price.Discount,
	}
	if req.Avatar != nil {
		item.Avatar = *req.Avatar
	}

	view, err := s.items.Create(c.UserContext(), item, req.Tags)
	if err != nil {
		if errors.Is(err, common.ErrorUnknownTag) {
			return messageResponse(c, fiber.StatusUnprocessableEntity, msgInvalidData)
		}
		s.logger.Error(c.UserContext(), "item create failed", "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": view.ID})
}

func (s *Server) updateItem(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
	}

	var req updateItemRequest
	if status, ok := parseBody(c, &req); !ok {
		if status == fiber.StatusUnprocessableEntity {
			return messageResponse(c, status, msgInvalidData)
		}
		return messageResponse(c, status, msgWrongDataFormat)
	}

	patch := &services.ItemPatch{
		Name:   req.Name,
		Count:  req.Count,
		Avatar: req.Avatar,
		Tags:   req.Tags,
	}
	if req.Price != nil {
		patch.Original = req.Price.Original
		patch.Discount = req.Price.Discount
	}

	if _, err := s.items.Update(c.UserContext(), id, patch); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
		case errors.Is(err, common.ErrorUnknownTag):
			return messageResponse(c, fiber.StatusUnprocessableEntity, msgInvalidData)
		default:
			s.logger.Error(c.UserContext(), "item update failed", "id", id, "error", err)
			return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
		}
	}
	return okResponse(c)
}

func (s *Server) deleteItem(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
	}

	if err := s.items.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
		}
		s.logger.Error(c.UserContext(), "item delete failed", "id", id, "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	return okResponse(c)
}

func (s *Server) createItemAvatarUploadURL(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
	}

	if _, err := s.items.Get(c.UserContext(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
		}
		s.logger.Error(c.UserContext(), "item fetch failed", "id", id, "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}

	key, url, err := s.avatars.GetPresignedPutUrl(c.UserContext())
	if err != nil {
		s.logger.Error(c.UserContext(), "avatar presign failed", "id", id, "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}

	// Record the key now; the client uploads directly to the object storage.
	if _, err := s.items.Update(c.UserContext(), id, &services.ItemPatch{Avatar: &key}); err != nil {
		s.logger.Error(c.UserContext(), "avatar key update failed", "id", id, "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"key": key, "upload_url": url})
}

func (s *Server) getItemAvatar(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
	}

	view, err := s.items.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return messageResponse(c, fiber.StatusForbidden, msgAbsentItem)
		}
		s.logger.Error(c.UserContext(), "item fetch failed", "id", id, "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	if view.Avatar == "" {
		return messageResponse(c, fiber.StatusForbidden, msgAbsentAvatar)
	}

	url, err := s.avatars.GetPresignedGetUrl(c.UserContext(), view.Avatar)
	if err != nil {
		s.logger.Error(c.UserContext(), "avatar presign failed", "id", id, "error", err)
		return messageResponse(c, fiber.StatusInternalServerError, msgInternalError)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": url})
}
