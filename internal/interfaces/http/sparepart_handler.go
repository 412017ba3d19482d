package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sparepart-api/internal/application/analytics"
	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/application/inventory"
	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/application/usecase"
)

// SparePartHandler rutas /sparepart.
type SparePartHandler struct {
	uc     *usecase.SparePartUseCase
	stock  *inventory.StockUseCase
	stats  *analytics.StatsUseCase
	export *usecase.ExportUseCase
}

// NewSparePartHandler construye el handler.
func NewSparePartHandler(
	uc *usecase.SparePartUseCase,
	stock *inventory.StockUseCase,
	stats *analytics.StatsUseCase,
	export *usecase.ExportUseCase,
) *SparePartHandler {
	return &SparePartHandler{uc: uc, stock: stock, stats: stats, export: export}
}

// List godoc
// @Summary      Listar repuestos con marca y categoría
// @Tags         sparepart
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SparePartResponse
// @Router       /sparepart [get]
func (h *SparePartHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear repuesto
// @Description  jumlah, terjual, sisa, harga_modal y harga_jual valen 0 si no se envían.
// @Tags         sparepart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSparePartRequest  true  "Datos del repuesto"
// @Success      201   {object}  dto.SparePartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /sparepart [post]
func (h *SparePartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSparePartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *SparePartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSparePartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *SparePartHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Sparepart berhasil dihapus"})
}

// AdjustStock godoc
// @Summary      Ajuste directo de stock (sin registrar transacción)
// @Tags         sparepart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "id_sparepart, tipe, jumlah"
// @Success      200   {object}  dto.StockAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /sparepart/update-by-transaksi [post]
func (h *SparePartHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.stock.AdjustStock(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *SparePartHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.stats.SparePartStatistics(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History transacciones del repuesto, la más reciente primero.
func (h *SparePartHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *SparePartHandler) Search(c *fiber.Ctx) error {
	var in dto.SparePartSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "query tidak valid")
	}
	out, err := h.uc.Search(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Repuestos con stock bajo
// @Tags         sparepart
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "sisa máximo (por defecto LOW_STOCK_THRESHOLD)"
// @Success      200  {object}  dto.LowStockResponse
// @Router       /sparepart/stok-rendah [get]
func (h *SparePartHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), int64(c.QueryInt("threshold", 0)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportExcel libro con una hoja por marca.
func (h *SparePartHandler) ExportExcel(c *fiber.Ctx) error {
	f, err := h.export.SparePartsXLSX(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

// ExportCSV repuestos creados entre start y end (opcionales).
func (h *SparePartHandler) ExportCSV(c *fiber.Ctx) error {
	f, err := h.export.SparePartsCSV(c.UserContext(), c.Query("start"), c.Query("end"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

// sendFile responde el archivo como adjunto.
func sendFile(c *fiber.Ctx, f *ports.File) error {
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}
