package server

import (
	"net/http"
	"strconv"
	"strings"

	ticketingdomain "github.com/boxofficehq/boxoffice/internal/ticketing/domain"
	"github.com/gin-gonic/gin"
)

// Seed inserts demo inventory and a demo order, returning the generated ids.
func (s *Server) Seed(c *gin.Context) {
	resp, err := s.ticketingSvc.Seed(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) AvailableQuantity(c *gin.Context) {
	resp, err := s.ticketingSvc.AvailableQuantity(c.Request.Context(), ticketingdomain.AvailableQuantityRequest{
		TicketTypeID: strings.TrimSpace(c.Param("ticketTypeId")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) OrderSummaries(c *gin.Context) {
	resp, err := s.ticketingSvc.OrderSummaries(c.Request.Context(), ticketingdomain.OrderSummariesRequest{
		CustomerID: strings.TrimSpace(c.Param("customerId")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) AdjustQuantity(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("delta"))
	if raw == "" {
		AbortWithError(c, newValidationError("delta", "missing_delta", "delta is required"))
		return
	}
	delta, err := strconv.Atoi(raw)
	if err != nil {
		AbortWithError(c, ticketingdomain.ErrInvalidDelta)
		return
	}

	err = s.ticketingSvc.AdjustQuantity(c.Request.Context(), ticketingdomain.AdjustQuantityRequest{
		TicketTypeID: strings.TrimSpace(c.Param("ticketTypeId")),
		Delta:        delta,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quantity adjusted successfully"})
}
