package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/indersauwalia/CrediScore/internal/errors"
	"github.com/indersauwalia/CrediScore/internal/service"
)

// AdminHandler handles the admin review queues.
type AdminHandler struct {
	verificationService service.VerificationService
	loanService         service.LoanService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(verificationService service.VerificationService, loanService service.LoanService) *AdminHandler {
	return &AdminHandler{
		verificationService: verificationService,
		loanService:         loanService,
	}
}

// DecisionRequest carries the optional note attached to a decision.
type DecisionRequest struct {
	AdminNote string `json:"admin_note"`
}

// PendingIncome godoc
// @Summary List pending income verification requests, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/pending-income [get]
func (h *AdminHandler) PendingIncome(c echo.Context) error {
	requests, err := h.verificationService.ListPending(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"requests": requests})
}

// ApproveIncome godoc
// @Summary Approve a pending income verification request
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body DecisionRequest false "Optional note"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/income-approve/{id} [put]
func (h *AdminHandler) ApproveIncome(c echo.Context) error {
	return h.decideIncome(c, true, "income verification approved successfully")
}

// RejectIncome godoc
// @Summary Reject a pending income verification request
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body DecisionRequest false "Optional note"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/income-reject/{id} [put]
func (h *AdminHandler) RejectIncome(c echo.Context) error {
	return h.decideIncome(c, false, "income verification rejected successfully")
}

func (h *AdminHandler) decideIncome(c echo.Context, approve bool, message string) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request id",
			Code:  "INVALID_UUID",
		})
	}

	var req DecisionRequest
	_ = c.Bind(&req)

	if err := h.verificationService.Decide(c.Request().Context(), requestID, approve, req.AdminNote); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// PendingLoans godoc
// @Summary List pending loan requests, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/pending-loans [get]
func (h *AdminHandler) PendingLoans(c echo.Context) error {
	requests, err := h.loanService.ListPending(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"requests": requests})
}

// ApproveLoan godoc
// @Summary Approve a pending loan request and disburse the amount
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body DecisionRequest false "Optional note"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/loan-approve/{id} [put]
func (h *AdminHandler) ApproveLoan(c echo.Context) error {
	return h.decideLoan(c, true, "loan approved and disbursed successfully")
}

// RejectLoan godoc
// @Summary Reject a pending loan request
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body DecisionRequest false "Optional note"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/loan-reject/{id} [put]
func (h *AdminHandler) RejectLoan(c echo.Context) error {
	return h.decideLoan(c, false, "loan request rejected successfully")
}

func (h *AdminHandler) decideLoan(c echo.Context, approve bool, message string) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request id",
			Code:  "INVALID_UUID",
		})
	}

	var req DecisionRequest
	_ = c.Bind(&req)

	if err := h.loanService.Decide(c.Request().Context(), requestID, approve, req.AdminNote); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// ViewProof godoc
// @Summary Stream the proof document uploaded for a profile
// @Tags admin
// @Produce octet-stream
// @Security BearerAuth
// @Param profileId path string true "Profile ID"
// @Success 200 {file} binary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/view-proof/{profileId} [get]
func (h *AdminHandler) ViewProof(c echo.Context) error {
	profileID, err := uuid.Parse(c.Param("profileId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid profile id",
			Code:  "INVALID_UUID",
		})
	}

	doc, err := h.verificationService.OpenProof(c.Request().Context(), profileID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename=%q`, doc.Filename))
	return c.Stream(http.StatusOK, doc.ContentType, bytes.NewReader(doc.Data))
}
