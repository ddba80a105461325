package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/indersauwalia/CrediScore/internal/errors"
	"github.com/indersauwalia/CrediScore/internal/model"
	"github.com/indersauwalia/CrediScore/internal/service"
)

// CreditHandler handles income profile submission and score lookup.
type CreditHandler struct {
	creditService service.CreditService
}

// NewCreditHandler creates a new credit handler.
func NewCreditHandler(creditService service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// SubmitIncomeRequest represents an income profile submission.
type SubmitIncomeRequest struct {
	MonthlyIncome   decimal.Decimal `json:"monthly_income" validate:"required"`
	MonthlyExpense  decimal.Decimal `json:"monthly_expense"`
	ExistingEMI     decimal.Decimal `json:"existing_emi"`
	CreditCardSpend decimal.Decimal `json:"credit_card_spend"`
	EmploymentType  string          `json:"employment_type"`
	Designation     string          `json:"designation"`
	TotalExpYears   int             `json:"total_exp_years" validate:"gte=0"`
	CurrentExpYears int             `json:"current_exp_years" validate:"gte=0"`
	Dependents      int             `json:"dependents" validate:"gte=0"`
	ResidenceType   string          `json:"residence_type"`
	Gender          string          `json:"gender"`
	MaritalStatus   string          `json:"marital_status"`
	EducationLevel  string          `json:"education_level"`
}

// SubmitIncome godoc
// @Summary Submit or update the income profile and recompute the CrediScore
// @Tags credit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitIncomeRequest true "Income profile"
// @Success 200 {object} service.CreditSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /credit/submit-income [post]
func (h *CreditHandler) SubmitIncome(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	var req SubmitIncomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	summary, err := h.creditService.SubmitProfile(c.Request().Context(), userID, service.ProfileInput{
		MonthlyIncome:   req.MonthlyIncome,
		MonthlyExpense:  req.MonthlyExpense,
		ExistingEMI:     req.ExistingEMI,
		CreditCardSpend: req.CreditCardSpend,
		EmploymentType:  model.EmploymentType(req.EmploymentType),
		Designation:     req.Designation,
		TotalExpYears:   req.TotalExpYears,
		CurrentExpYears: req.CurrentExpYears,
		Dependents:      req.Dependents,
		ResidenceType:   model.ResidenceType(req.ResidenceType),
		Gender:          req.Gender,
		MaritalStatus:   req.MaritalStatus,
		EducationLevel:  req.EducationLevel,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, summary)
}

// Summary godoc
// @Summary Get the current credit summary
// @Tags credit
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CreditSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /credit/summary [get]
func (h *CreditHandler) Summary(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	summary, err := h.creditService.Summary(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}
