package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sparepart-api/internal/application/analytics"
	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/application/usecase"
)

// BrandHandler rutas /merek.
type BrandHandler struct {
	uc    *usecase.BrandUseCase
	stats *analytics.StatsUseCase
}

// NewBrandHandler construye el handler.
func NewBrandHandler(uc *usecase.BrandUseCase, stats *analytics.StatsUseCase) *BrandHandler {
	return &BrandHandler{uc: uc, stats: stats}
}

// List godoc
// @Summary      Listar marcas
// @Tags         merek
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BrandResponse
// @Router       /merek [get]
func (h *BrandHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BrandHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear marca
// @Tags         merek
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BrandRequest  true  "nama_merek"
// @Success      201   {object}  dto.BrandResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /merek [post]
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var in dto.BrandRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *BrandHandler) Update(c *fiber.Ctx) error {
	var in dto.BrandRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Merek berhasil dihapus"})
}

// Categories categorías en las que la marca tiene repuestos.
func (h *BrandHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Statistics godoc
// @Summary      Estadísticas por marca
// @Tags         merek
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BrandStatResponse
// @Router       /merek/statistik [get]
func (h *BrandHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.stats.BrandStats(c.UserContext(), true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesStatistics igual que Statistics sin kategori_breakdown.
func (h *BrandHandler) SalesStatistics(c *fiber.Ctx) error {
	out, err := h.stats.BrandStats(c.UserContext(), false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CategoryHandler rutas /kategori-barang.
type CategoryHandler struct {
	uc    *usecase.CategoryUseCase
	stats *analytics.StatsUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, stats *analytics.StatsUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc, stats: stats}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CategoryHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Kategori berhasil dihapus"})
}

// Brands marcas con repuestos en la categoría.
func (h *CategoryHandler) Brands(c *fiber.Ctx) error {
	out, err := h.uc.Brands(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Statistics godoc
// @Summary      Estadísticas por categoría
// @Tags         kategori-barang
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryStatResponse
// @Router       /kategori-barang/statistik [get]
func (h *CategoryHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.stats.CategoryStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
