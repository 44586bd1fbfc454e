package handlers

import (
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/dto"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/repository"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LayerHandler struct {
	service *services.DrillingService
}

func NewLayerHandler(service *services.DrillingService) *LayerHandler {
	return &LayerHandler{service: service}
}

func (h *LayerHandler) List(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}

	layers, err := h.service.ListLayers(c.UserContext(), id, repository.LayerFilter{
		Lithology: c.Query("lithology"),
	})
	if err != nil {
		return writeError(c, err, "list_layers")
	}
	return c.JSON(dto.NewLayerResponses(layers))
}

// WellLayers lists the layers of the well named by the well_id query
// parameter. A well the caller cannot see yields an empty list.
func (h *LayerHandler) WellLayers(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}

	raw := c.Query("well_id")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "well_id is required",
		})
	}
	wellID, err := uuid.Parse(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "well_id must be a valid UUID",
		})
	}

	layers, err := h.service.WellLayers(c.UserContext(), id, wellID)
	if err != nil {
		return writeError(c, err, "well_layers", "well_id", wellID.String())
	}
	return c.JSON(dto.NewLayerResponses(layers))
}

func (h *LayerHandler) Get(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}
	layerID, ok := pathID(c)
	if !ok {
		return notFound(c)
	}

	layer, err := h.service.GetLayer(c.UserContext(), id, layerID)
	if err != nil {
		return writeError(c, err, "get_layer", "layer_id", layerID.String())
	}
	return c.JSON(dto.NewLayerResponse(layer))
}

func (h *LayerHandler) Create(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.LayerRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err, "create_layer")
	}

	layer, err := h.service.CreateLayer(c.UserContext(), id, req)
	if err != nil {
		var attrs []any
		if wellID, ok := req.WellRef(); ok {
			attrs = append(attrs, "well_id", wellID.String())
		}
		return writeError(c, err, "create_layer", attrs...)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLayerResponse(layer))
}

func (h *LayerHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

func (h *LayerHandler) Patch(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *LayerHandler) update(c *fiber.Ctx, partial bool) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}
	layerID, ok := pathID(c)
	if !ok {
		return notFound(c)
	}

	var req dto.LayerRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err, "update_layer", "layer_id", layerID.String())
	}

	layer, err := h.service.UpdateLayer(c.UserContext(), id, layerID, req, partial)
	if err != nil {
		return writeError(c, err, "update_layer", "layer_id", layerID.String())
	}
	return c.JSON(dto.NewLayerResponse(layer))
}

func (h *LayerHandler) Delete(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}
	layerID, ok := pathID(c)
	if !ok {
		return notFound(c)
	}

	if err := h.service.DeleteLayer(c.UserContext(), id, layerID); err != nil {
		return writeError(c, err, "delete_layer", "layer_id", layerID.String())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
