package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"walkaway/internal/models"
	"walkaway/internal/services"
)

// LeadSubmitter is satisfied by *services.LeadDispatcher.
type LeadSubmitter interface {
	Submit(ctx context.Context, lead models.LeadRecord) (services.Ack, error)
}

type LeadHandler struct {
	Service LeadSubmitter
	Log     *logrus.Logger
}

func NewLeadHandler(service LeadSubmitter, log *logrus.Logger) *LeadHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LeadHandler{Service: service, Log: log}
}

// LeadRequest is the body posted by the calculator page. The estimate fields
// are the values the page displayed; they are stored as sent.
type LeadRequest struct {
	Name    string `json:"name" example:"Jane Seller"`
	Email   string `json:"email" example:"jane@example.com"`
	Phone   string `json:"phone" example:"260-555-1234"`
	Address string `json:"address" example:"123 Main St"`
	Beds    string `json:"beds" example:"3"`
	Baths   string `json:"baths" example:"2"`

	SquareFeet     FlexFloat `json:"sqft" swaggertype:"number" example:"1650"`
	Condition      string    `json:"condition" example:"average"`
	Timeline       string    `json:"timeline" example:"3_6"`
	MortgagePayoff FlexFloat `json:"mortgagePayoff" swaggertype:"number" example:"0"`
	Concessions    FlexBool  `json:"concessions" swaggertype:"boolean"`

	LowSale  FlexFloat `json:"lowSale" swaggertype:"number"`
	HighSale FlexFloat `json:"highSale" swaggertype:"number"`
	NetLow   FlexFloat `json:"netLow" swaggertype:"number"`
	NetHigh  FlexFloat `json:"netHigh" swaggertype:"number"`
}

func (r LeadRequest) toRecord() models.LeadRecord {
	return models.LeadRecord{
		Name:               strings.TrimSpace(r.Name),
		Email:              strings.TrimSpace(r.Email),
		Phone:              strings.TrimSpace(r.Phone),
		Address:            strings.TrimSpace(r.Address),
		Beds:               strings.TrimSpace(r.Beds),
		Baths:              strings.TrimSpace(r.Baths),
		SquareFeet:         float64(r.SquareFeet),
		Condition:          models.Condition(strings.TrimSpace(r.Condition)),
		Timeline:           models.Timeline(strings.TrimSpace(r.Timeline)),
		MortgagePayoff:     float64(r.MortgagePayoff),
		IncludeConcessions: bool(r.Concessions),
		Estimate: models.PriceEstimate{
			SaleLow:  float64(r.LowSale),
			SaleHigh: float64(r.HighSale),
			NetLow:   float64(r.NetLow),
			NetHigh:  float64(r.NetHigh),
		},
	}
}

type okResponse struct {
	OK bool `json:"ok" example:"true"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Ping godoc
// @Summary  Lead endpoint liveness
// @Tags     lead
// @Produce  json
// @Success  200 {object} okResponse
// @Router   /lead [get]
func (h *LeadHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Submit godoc
// @Summary  Submit a lead
// @Tags     lead
// @Accept   json
// @Produce  json
// @Param    lead body LeadRequest true "Lead and displayed estimate"
// @Success  200 {object} okResponse
// @Failure  400 {object} errorResponse
// @Failure  500 {object} errorResponse
// @Router   /lead [post]
func (h *LeadHandler) Submit(c *gin.Context) {
	var req LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	_, err := h.Service.Submit(c.Request.Context(), req.toRecord())
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, services.ErrConfiguration):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
	case errors.Is(err, services.ErrLedgerWrite):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.Log.WithError(err).Error("[lead] unexpected submit error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
