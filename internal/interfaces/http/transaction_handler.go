package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sparepart-api/internal/application/analytics"
	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/application/inventory"
	"github.com/jhoicas/Sparepart-api/internal/application/usecase"
	"github.com/jhoicas/Sparepart-api/internal/domain"
)

// TransactionHandler rutas /transaksi.
type TransactionHandler struct {
	uc     *usecase.TransactionUseCase
	stock  *inventory.StockUseCase
	export *usecase.ExportUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *usecase.TransactionUseCase, stock *inventory.StockUseCase, export *usecase.ExportUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc, stock: stock, export: export}
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transaksi
// @Security     Bearer
// @Produce      json
// @Param        page             query  int     false  "Página"  default(1)
// @Param        limit            query  int     false  "Tamaño de página"  default(10)
// @Param        tipe             query  string  false  "receipt | sale (acepta masuk/keluar)"
// @Param        id_sparepart     query  string  false  "Repuesto"
// @Param        kategori         query  string  false  "Categoría del repuesto"
// @Param        tanggal_mulai    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        tanggal_selesai  query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        search           query  string  false  "Texto en keterangan"
// @Param        sort             query  string  false  "{\"field\":\"tanggal\",\"order\":\"desc\"}"
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /transaksi [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var in dto.TransactionListRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "query tidak valid")
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar transacción y actualizar stock
// @Tags         transaksi
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Transacción"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /transaksi [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.stock.PostTransaction(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update corrige la transacción sin recalcular el stock.
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Transaksi berhasil dihapus"})
}

// Summary godoc
// @Summary      Totales por tipo y cashflow
// @Tags         transaksi
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TransactionSummaryResponse
// @Router       /transaksi/ringkasan [get]
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	in, err := exportRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *TransactionHandler) ExportCSV(c *fiber.Ctx) error {
	in, err := exportRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := h.export.TransactionsCSV(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

func (h *TransactionHandler) ExportExcel(c *fiber.Ctx) error {
	in, err := exportRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := h.export.TransactionsXLSX(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

func (h *TransactionHandler) ExportPDF(c *fiber.Ctx) error {
	in, err := exportRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := h.export.TransactionsPDF(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

// ReportHandler ruta pública /laporan/statistik.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Statistics godoc
// @Summary      Estadísticas de transacciones para gráficos
// @Tags         laporan
// @Produce      json
// @Param        kategori         query  string  false  "Categoría"
// @Param        merek            query  string  false  "Marca"
// @Param        barang           query  string  false  "Repuesto"
// @Param        tanggal_mulai    query  string  false  "Desde"
// @Param        tanggal_selesai  query  string  false  "Hasta"
// @Success      200  {object}  dto.ReportResponse
// @Router       /laporan/statistik [get]
func (h *ReportHandler) Statistics(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "query tidak valid")
	}
	out, err := h.uc.Statistics(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// exportRequest lee tipe, tanggal_mulai y tanggal_selesai.
func exportRequest(c *fiber.Ctx) (dto.TransactionExportRequest, error) {
	var in dto.TransactionExportRequest
	if err := c.QueryParser(&in); err != nil {
		return in, fmt.Errorf("%w: query tidak valid", domain.ErrInvalidInput)
	}
	return in, nil
}
