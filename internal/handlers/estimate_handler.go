package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"walkaway/internal/models"
	"walkaway/internal/services"
	"walkaway/internal/utils"
)

type EstimateHandler struct{}

func NewEstimateHandler() *EstimateHandler {
	return &EstimateHandler{}
}

type estimateDisplay struct {
	Sale string `json:"sale" example:"$209,385 – $236,115"`
	Net  string `json:"net" example:"$191,587 – $219,587"`
}

type estimateResponse struct {
	Input    models.PropertyInput `json:"input"`
	Estimate models.PriceEstimate `json:"estimate"`
	Display  estimateDisplay      `json:"display"`
}

// Get godoc
// @Summary  Estimate sale price and walkaway range
// @Tags     estimate
// @Produce  json
// @Param    sqft           query number  true  "Square footage"
// @Param    condition      query string  false "needs_work | average | updated | renovated"
// @Param    concessions    query boolean false "Include seller concessions"
// @Param    mortgagePayoff query number  false "Mortgage payoff"
// @Success  200 {object} estimateResponse
// @Failure  400 {object} errorResponse
// @Router   /estimate [get]
func (h *EstimateHandler) Get(c *gin.Context) {
	in := models.PropertyInput{
		SquareFeet:         parseFloatOrZero(c.Query("sqft")),
		IncludeConcessions: parseBool(c.Query("concessions")),
		MortgagePayoff:     parseFloatOrZero(c.Query("mortgagePayoff")),
	}
	if !(in.SquareFeet > 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Square footage must be > 0"})
		return
	}
	if in.MortgagePayoff < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mortgage payoff must be >= 0"})
		return
	}
	condition, ok := models.ParseCondition(c.DefaultQuery("condition", string(models.ConditionAverage)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown condition"})
		return
	}
	in.Condition = condition

	est := services.Estimate(in)
	c.JSON(http.StatusOK, estimateResponse{
		Input:    in,
		Estimate: est,
		Display: estimateDisplay{
			Sale: utils.FormatRange(est.SaleLow, est.SaleHigh),
			Net:  utils.FormatRange(est.NetLow, est.NetHigh),
		},
	})
}
