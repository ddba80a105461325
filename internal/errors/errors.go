package errors

import (
	"errors"
	"net/http"
)

// Validation errors: malformed or out-of-range input, nothing mutated.
var (
	// ErrInvalidIncome is returned when monthly income is missing or not positive.
	ErrInvalidIncome = errors.New("monthly income is required and must be positive")
	// ErrInvalidExperience is returned when current role tenure exceeds total experience.
	ErrInvalidExperience = errors.New("current experience cannot exceed total experience")
	// ErrInvalidEmploymentType is returned for an unknown employment type.
	ErrInvalidEmploymentType = errors.New("invalid employment type")
	// ErrInvalidResidenceType is returned for an unknown residence type.
	ErrInvalidResidenceType = errors.New("invalid residence type")
	// ErrInvalidPAN is returned when the PAN does not match the required pattern.
	ErrInvalidPAN = errors.New("invalid or missing PAN number")
	// ErrInvalidAccountNumber is returned when the bank account number is malformed.
	ErrInvalidAccountNumber = errors.New("invalid or missing account number")
	// ErrInvalidIFSC is returned when the IFSC code does not match the required pattern.
	ErrInvalidIFSC = errors.New("invalid or missing IFSC code")
	// ErrInvalidLoanType is returned when the loan type is not in the catalogue.
	ErrInvalidLoanType = errors.New("invalid loan type")
	// ErrInvalidTenure is returned when the tenure is out of range.
	ErrInvalidTenure = errors.New("tenure must be between 1 and 60 months")
	// ErrAmountBelowMinimum is returned when the requested amount is below the loan floor.
	ErrAmountBelowMinimum = errors.New("minimum loan amount is 1000")
	// ErrUnsupportedFileType is returned when a proof upload is not a PDF or image.
	ErrUnsupportedFileType = errors.New("only PDF and image proofs are allowed")
	// ErrFileTooLarge is returned when a proof upload exceeds the size cap.
	ErrFileTooLarge = errors.New("proof file exceeds the size limit")
)

// Precondition errors: action attempted in the wrong state, nothing mutated.
var (
	// ErrDetailsMismatch is returned when bank details do not match a verified account.
	ErrDetailsMismatch = errors.New("verification failed, details do not match")
	// ErrNotVerified is returned when a loan is attempted before income verification.
	ErrNotVerified = errors.New("income verification pending or not approved")
	// ErrLimitExceeded is returned when the requested amount exceeds the remaining limit.
	ErrLimitExceeded = errors.New("requested amount exceeds remaining credit limit")
	// ErrAlreadyDecided is returned when deciding a request that is not pending.
	ErrAlreadyDecided = errors.New("request already processed")
	// ErrDetailsNotVerified is returned when proof is uploaded before the
	// bank detail check has passed.
	ErrDetailsNotVerified = errors.New("bank details not verified yet")
	// ErrVerificationActive is returned when a verification request already
	// exists for the current credit cycle.
	ErrVerificationActive = errors.New("verification already pending or approved")
	// ErrVerificationClosed is returned when proof is uploaded after a
	// rejection; only a fresh profile submission reopens the cycle.
	ErrVerificationClosed = errors.New("verification was rejected, resubmit income profile to restart")
)

// Not-found errors.
var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound is returned when the user has no financial profile.
	ErrProfileNotFound = errors.New("income profile not found")
	// ErrRequestNotFound is returned when the referenced request does not exist.
	ErrRequestNotFound = errors.New("request not found")
	// ErrProofNotFound is returned when no proof document exists for a profile.
	ErrProofNotFound = errors.New("proof file not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var httpCodes = map[error]struct {
	status int
	code   string
}{
	ErrInvalidIncome:         {http.StatusBadRequest, "INVALID_INCOME"},
	ErrInvalidExperience:     {http.StatusBadRequest, "INVALID_EXPERIENCE"},
	ErrInvalidEmploymentType: {http.StatusBadRequest, "INVALID_EMPLOYMENT_TYPE"},
	ErrInvalidResidenceType:  {http.StatusBadRequest, "INVALID_RESIDENCE_TYPE"},
	ErrInvalidPAN:            {http.StatusBadRequest, "INVALID_PAN"},
	ErrInvalidAccountNumber:  {http.StatusBadRequest, "INVALID_ACCOUNT_NUMBER"},
	ErrInvalidIFSC:           {http.StatusBadRequest, "INVALID_IFSC"},
	ErrInvalidLoanType:       {http.StatusBadRequest, "INVALID_LOAN_TYPE"},
	ErrInvalidTenure:         {http.StatusBadRequest, "INVALID_TENURE"},
	ErrAmountBelowMinimum:    {http.StatusBadRequest, "AMOUNT_BELOW_MINIMUM"},
	ErrUnsupportedFileType:   {http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
	ErrFileTooLarge:          {http.StatusBadRequest, "FILE_TOO_LARGE"},

	ErrDetailsMismatch:    {http.StatusBadRequest, "DETAILS_MISMATCH"},
	ErrNotVerified:        {http.StatusBadRequest, "NOT_VERIFIED"},
	ErrLimitExceeded:      {http.StatusBadRequest, "LIMIT_EXCEEDED"},
	ErrAlreadyDecided:     {http.StatusConflict, "ALREADY_DECIDED"},
	ErrDetailsNotVerified: {http.StatusBadRequest, "DETAILS_NOT_VERIFIED"},
	ErrVerificationActive: {http.StatusConflict, "VERIFICATION_ACTIVE"},
	ErrVerificationClosed: {http.StatusConflict, "VERIFICATION_CLOSED"},

	ErrUserNotFound:    {http.StatusNotFound, "USER_NOT_FOUND"},
	ErrProfileNotFound: {http.StatusNotFound, "PROFILE_NOT_FOUND"},
	ErrRequestNotFound: {http.StatusNotFound, "REQUEST_NOT_FOUND"},
	ErrProofNotFound:   {http.StatusNotFound, "PROOF_NOT_FOUND"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// known set is a dependency failure and surfaces as a generic server error.
func MapErrorToHTTP(err error) *HTTPError {
	for sentinel, m := range httpCodes {
		if errors.Is(err, sentinel) {
			return NewHTTPError(m.status, sentinel.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
