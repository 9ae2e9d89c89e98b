package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Joan074/SellPoint/internal/apierror"
	"github.com/Joan074/SellPoint/internal/dto"
	"github.com/Joan074/SellPoint/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Crea una venta ACID: descuenta stock, asigna numero de ticket y despacha la generación del PDF asíncrona.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.VentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.VentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AnularVenta godoc
// @Summary      Anular venta
// @Description  Anula una venta y restaura el stock de cada linea. Idempotente: anular una venta ya anulada la retorna sin cambios.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la venta"
// @Success      200  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas/{id} [delete]
func (h *VentasHandler) AnularVenta(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.AnularVenta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarVentas returns sales between desde (inclusive) and hasta (exclusive),
// optionally filtered by estado. Defaults: last month up to now.
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	hasta := time.Now()
	if filter.Hasta != "" {
		t, err := time.Parse(time.RFC3339, filter.Hasta)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hasta: fecha invalida, use RFC3339"))
			return
		}
		hasta = t
	}
	desde := hasta.AddDate(0, -1, 0)
	if filter.Desde != "" {
		t, err := time.Parse(time.RFC3339, filter.Desde)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde: fecha invalida, use RFC3339"))
			return
		}
		desde = t
	}

	resp, err := h.svc.ListarVentas(c.Request.Context(), desde, hasta, filter.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerVenta returns one sale with its line items and joined names.
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerVenta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
