package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
)

// ReportHandler página de relatórios.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Income GET /reports?period=today|week|month|all
func (h *ReportHandler) Income(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		req = dto.ReportRequest{}
	}
	report, err := h.uc.IncomeReport(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Render(ViewReports, fiber.Map{
		"Title":  "Relatórios",
		"Report": report,
	})
}
