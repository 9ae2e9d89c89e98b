package handler

import (
	"net/http"

	"github.com/Joan074/SellPoint/internal/apierror"
	"github.com/Joan074/SellPoint/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsultaPreciosHandler serves the in-store price-check kiosk. It is the only
// endpoint outside /auth that runs without a token: the kiosk has no session.
type ConsultaPreciosHandler struct{ svc service.ProductoService }

func NewConsultaPreciosHandler(svc service.ProductoService) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{svc: svc}
}

// Consultar godoc
// @Summary      Consultar precio por codigo de barras
// @Tags         consulta-precios
// @Produce      json
// @Param        codigo path string true "Codigo de barras"
// @Success      200 {object} dto.ConsultaPrecioResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/consulta-precios/{codigo} [get]
func (h *ConsultaPreciosHandler) Consultar(c *gin.Context) {
	codigo := c.Param("codigo")
	if codigo == "" {
		c.JSON(http.StatusBadRequest, apierror.New("codigo de barras requerido"))
		return
	}
	resp, err := h.svc.ConsultarPrecio(c.Request.Context(), codigo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
