package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/indersauwalia/CrediScore/internal/errors"
	"github.com/indersauwalia/CrediScore/internal/service"
)

var allowedProofTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}

// VerificationHandler handles the user-facing verification flow.
type VerificationHandler struct {
	verificationService service.VerificationService
	maxProofSize        int64
}

// NewVerificationHandler creates a new verification handler.
func NewVerificationHandler(verificationService service.VerificationService, maxProofSize int64) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		maxProofSize:        maxProofSize,
	}
}

// VerifyDetailsRequest represents a bank detail verification request.
type VerifyDetailsRequest struct {
	PAN           string `json:"pan" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	IFSC          string `json:"ifsc" validate:"required"`
}

// VerifyDetails godoc
// @Summary Verify PAN, account number and IFSC against the bank records
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VerifyDetailsRequest true "Bank details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /verification/verify-details [post]
func (h *VerificationHandler) VerifyDetails(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	var req VerifyDetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.verificationService.VerifyDetails(c.Request().Context(), userID, req.PAN, req.AccountNumber, req.IFSC); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "details verified successfully, proceed to upload proof",
	})
}

// UploadProof godoc
// @Summary Upload an income proof document and submit for admin review
// @Tags verification
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param proof formData file true "Proof document (PDF or image)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /verification/upload-proof [post]
func (h *VerificationHandler) UploadProof(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "no file uploaded",
			Code:  "NO_FILE",
		})
	}
	if fileHeader.Size > h.maxProofSize {
		httpErr := errors.MapErrorToHTTP(errors.ErrFileTooLarge)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedProofTypes[contentType] {
		httpErr := errors.MapErrorToHTTP(errors.ErrUnsupportedFileType)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to read uploaded file",
			Code:  "UPLOAD_READ_FAILED",
		})
	}
	defer src.Close()

	request, err := h.verificationService.UploadProof(c.Request().Context(), userID, fileHeader.Filename, contentType, src)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":    "proof uploaded, verification request submitted for admin review",
		"request_id": request.ID.String(),
	})
}
