package handler

import (
	"fmt"
	"path"

	"github.com/gofiber/fiber/v2"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/response"
	"go-inventory-qr/internal/service"
	"go-inventory-qr/pkg/config"
	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/logger"
)

type MaterialHandler struct {
	service service.MaterialService
	storage config.StorageConfig
	logg    *logger.Logger
}

func NewMaterialHandler(s service.MaterialService, storage config.StorageConfig, logg *logger.Logger) *MaterialHandler {
	return &MaterialHandler{service: s, storage: storage, logg: logg}
}

// qrURL is where a client can fetch the image: the static mount for the
// local driver, the download endpoint otherwise.
func (h *MaterialHandler) qrURL(m *model.Material) string {
	if m.QRCodeFile == nil {
		return ""
	}
	if h.storage.IsLocal() && h.storage.PublicPath != "" {
		return path.Join(h.storage.PublicPath, *m.QRCodeFile)
	}
	return fmt.Sprintf("/api/v1/materials/%d/qr", m.ID)
}

func (h *MaterialHandler) toResponse(m *model.Material) model.MaterialResponse {
	return m.ToResponse(h.qrURL(m))
}

// GetMaterials lists materials.
// GET /api/v1/materials?order=default|alphabetical|by_category|by_category_then_name
func (h *MaterialHandler) GetMaterials(c *fiber.Ctx) error {
	materials, err := h.service.List(c.UserContext(), service.ParseListOrder(c.Query("order")))
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	out := make([]model.MaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, h.toResponse(&materials[i]))
	}
	return c.JSON(out)
}

// GET /api/v1/materials/:id
func (h *MaterialHandler) GetMaterial(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	material, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.JSON(h.toResponse(material))
}

// POST /api/v1/materials
func (h *MaterialHandler) CreateMaterial(c *fiber.Ctx) error {
	var input service.MaterialInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, h.logg, invalidBody())
	}

	material, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		if material != nil && pkgerrors.Is(err, pkgerrors.CodeDependency) {
			// Stored without a QR code; tell the caller which record it was.
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": pkgerrors.As(err).Message(),
				"code":  string(pkgerrors.CodeDependency),
				"data":  h.toResponse(material),
			})
		}
		return response.Error(c, h.logg, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Material created", "data": h.toResponse(material)})
}

// PUT /api/v1/materials/:id (also POST for HTML forms)
func (h *MaterialHandler) UpdateMaterial(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	var input service.MaterialInput
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, h.logg, invalidBody())
	}

	material, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.JSON(fiber.Map{"message": "Material updated", "data": h.toResponse(material)})
}

// DELETE /api/v1/materials/:id
func (h *MaterialHandler) DeleteMaterial(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.JSON(fiber.Map{"message": "Material deleted"})
}

// GetQRCode streams the PNG for printing.
// GET /api/v1/materials/:id/qr
func (h *MaterialHandler) GetQRCode(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	png, err := h.service.QRImage(c.UserContext(), id)
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	if c.QueryBool("download") {
		c.Attachment(fmt.Sprintf("qr_%d.png", id))
	}
	return c.Send(png)
}

// POST /api/v1/materials/:id/qr
func (h *MaterialHandler) RegenerateQRCode(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	material, err := h.service.RegenerateQR(c.UserContext(), id)
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.JSON(fiber.Map{"message": "QR code regenerated", "data": h.toResponse(material)})
}
