package handlers

import (
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/dto"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/repository"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WellHandler struct {
	service *services.DrillingService
}

func NewWellHandler(service *services.DrillingService) *WellHandler {
	return &WellHandler{service: service}
}

// List returns the caller's visible wells, each with its layers nested in
// depth order. It also serves /my_wells.
func (h *WellHandler) List(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}

	filter := repository.WellFilter{
		Area:       c.Query("area"),
		Structure:  c.Query("structure"),
		SyncStatus: c.Query("sync_status"),
		Search:     c.Query("search"),
	}

	wells, err := h.service.ListWells(c.UserContext(), id, filter)
	if err != nil {
		return writeError(c, err, "list_wells")
	}
	return c.JSON(dto.NewWellResponses(wells))
}

func (h *WellHandler) Get(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}
	wellID, ok := pathID(c)
	if !ok {
		return notFound(c)
	}

	well, err := h.service.GetWell(c.UserContext(), id, wellID)
	if err != nil {
		return writeError(c, err, "get_well", "well_id", wellID.String())
	}
	return c.JSON(dto.NewWellResponse(well))
}

func (h *WellHandler) Create(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.WellRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err, "create_well")
	}

	well, err := h.service.CreateWell(c.UserContext(), id, req)
	if err != nil {
		return writeError(c, err, "create_well")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewWellResponse(well))
}

// Update handles PUT, which requires every writable field.
func (h *WellHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

// Patch handles PATCH, which changes only the supplied fields.
func (h *WellHandler) Patch(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *WellHandler) update(c *fiber.Ctx, partial bool) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}
	wellID, ok := pathID(c)
	if !ok {
		return notFound(c)
	}

	var req dto.WellRequest
	if err := parseBody(c, &req); err != nil {
		return writeError(c, err, "update_well", "well_id", wellID.String())
	}

	well, err := h.service.UpdateWell(c.UserContext(), id, wellID, req, partial)
	if err != nil {
		return writeError(c, err, "update_well", "well_id", wellID.String())
	}
	return c.JSON(dto.NewWellResponse(well))
}

// Delete removes the well and, with it, every layer recorded for it.
func (h *WellHandler) Delete(c *fiber.Ctx) error {
	id, err := access.GetIdentity(c)
	if err != nil {
		return unauthorized(c)
	}
	wellID, ok := pathID(c)
	if !ok {
		return notFound(c)
	}

	if err := h.service.DeleteWell(c.UserContext(), id, wellID); err != nil {
		return writeError(c, err, "delete_well", "well_id", wellID.String())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
