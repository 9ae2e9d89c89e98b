package handler

import (
	"net/http"
	"time"

	"github.com/Joan074/SellPoint/internal/apierror"
	"github.com/Joan074/SellPoint/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Diario godoc
// @Summary      Reporte diario de ventas
// @Description  Totales, desglose por metodo de pago y productos mas vendidos del dia.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        fecha query string false "YYYY-MM-DD (default: hoy)"
// @Success      200 {object} dto.ReporteDiarioResponse
// @Router       /v1/reportes/diario [get]
func (h *ReportesHandler) Diario(c *gin.Context) {
	fecha := time.Now()
	if raw := c.Query("fecha"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, use YYYY-MM-DD"))
			return
		}
		fecha = t
	}
	resp, err := h.svc.ReporteDiario(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
