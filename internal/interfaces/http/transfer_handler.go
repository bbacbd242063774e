package http

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ngtrphuong/ioe/internal/application/transfer"
)

// TransferHandler importa y exporta productos y miembros en CSV (protegido).
type TransferHandler struct {
	uc *transfer.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// ImportProducts godoc
// @Summary      Importar productos desde CSV (UTF-8 con o sin BOM, o GB18030)
// @Tags         transfer
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo CSV"
// @Success      200   {object}  transfer.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfer/products/import [post]
func (h *TransferHandler) ImportProducts(c *fiber.Ctx) error {
	file, err := h.openUpload(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	defer file.Close()

	result, err := h.uc.ImportProducts(c.Context(), file, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ExportProducts godoc
// @Summary      Exportar todos los productos a CSV
// @Tags         transfer
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/transfer/products/export [get]
func (h *TransferHandler) ExportProducts(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.ExportProducts(c.Context(), &buf); err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, "productos", buf.Bytes())
}

// ImportMembers godoc
// @Summary      Importar miembros desde CSV
// @Tags         transfer
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo CSV"
// @Success      200   {object}  transfer.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfer/members/import [post]
func (h *TransferHandler) ImportMembers(c *fiber.Ctx) error {
	file, err := h.openUpload(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	defer file.Close()

	result, err := h.uc.ImportMembers(c.Context(), file, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ExportMembers godoc
// @Summary      Exportar todos los miembros a CSV
// @Tags         transfer
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/transfer/members/export [get]
func (h *TransferHandler) ExportMembers(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.ExportMembers(c.Context(), &buf); err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, "miembros", buf.Bytes())
}

func (h *TransferHandler) openUpload(c *fiber.Ctx) (multipart.File, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("falta el archivo 'file' en el formulario")
	}
	return header.Open()
}

func sendCSV(c *fiber.Ctx, name string, data []byte) error {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
