package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/indersauwalia/CrediScore/internal/errors"
	"github.com/indersauwalia/CrediScore/internal/kyc"
	"github.com/indersauwalia/CrediScore/internal/model"
)

func demoOracle() *kyc.Oracle {
	return kyc.NewOracle(kyc.DemoAccounts())
}

func newVerificationService(
	userRepo *MockUserRepository,
	profileRepo *MockProfileRepository,
	requestRepo *MockVerificationRepository,
	proofs *MockProofStore,
) VerificationService {
	return NewVerificationService(userRepo, profileRepo, requestRepo, proofs, demoOracle(), nil, testLogger())
}

func TestVerifyDetailsMatchesOracle(t *testing.T) {
	userID := uuid.New()
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)

	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "Aarav Sharma"}, nil)
	profileRepo.On("FindByUserID", mock.Anything, userID).Return(&model.FinancialProfile{UserID: userID}, nil)
	profileRepo.On("AttachBankDetails", mock.Anything, userID, "ABCDE1234F", "123456789012", "SBIN0001234").Return(nil)

	svc := newVerificationService(userRepo, profileRepo, new(MockVerificationRepository), new(MockProofStore))
	err := svc.VerifyDetails(context.Background(), userID, "abcde1234f", "123456789012", "sbin0001234")

	assert.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

func TestVerifyDetailsHolderNameMismatch(t *testing.T) {
	userID := uuid.New()
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)

	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "Someone Else"}, nil)
	profileRepo.On("FindByUserID", mock.Anything, userID).Return(&model.FinancialProfile{UserID: userID}, nil)

	svc := newVerificationService(userRepo, profileRepo, new(MockVerificationRepository), new(MockProofStore))
	err := svc.VerifyDetails(context.Background(), userID, "ABCDE1234F", "123456789012", "SBIN0001234")

	assert.ErrorIs(t, err, apperrors.ErrDetailsMismatch)
	profileRepo.AssertNotCalled(t, "AttachBankDetails",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyDetailsRejectsMalformedInput(t *testing.T) {
	svc := newVerificationService(new(MockUserRepository), new(MockProfileRepository),
		new(MockVerificationRepository), new(MockProofStore))

	cases := []struct {
		name               string
		pan, account, ifsc string
		wantErr            error
	}{
		{"bad pan", "NOTAPAN", "123456789012", "SBIN0001234", apperrors.ErrInvalidPAN},
		{"short account", "ABCDE1234F", "1234567", "SBIN0001234", apperrors.ErrInvalidAccountNumber},
		{"bad ifsc", "ABCDE1234F", "123456789012", "SBIN1234", apperrors.ErrInvalidIFSC},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.VerifyDetails(context.Background(), uuid.New(), tc.pan, tc.account, tc.ifsc)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUploadProofOpensPendingRequest(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	fileID := uuid.New()

	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	requestRepo := new(MockVerificationRepository)
	proofs := new(MockProofStore)

	user := &model.User{ID: userID, VerificationStatus: model.VerificationNotStarted}
	userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	profileRepo.On("FindByUserID", mock.Anything, userID).
		Return(&model.FinancialProfile{ID: profileID, UserID: userID, PAN: "ABCDE1234F"}, nil)
	proofs.On("Save", mock.Anything, "salary.pdf", "application/pdf", mock.Anything).Return(fileID, nil)
	profileRepo.On("AttachProof", mock.Anything, userID, fileID, "salary.pdf").
		Return(&model.FinancialProfile{ID: profileID, UserID: userID, PAN: "ABCDE1234F", ProofFileID: &fileID}, nil)
	requestRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.VerificationRequest")).Return(nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	svc := newVerificationService(userRepo, profileRepo, requestRepo, proofs)
	request, err := svc.UploadProof(context.Background(), userID, "salary.pdf", "application/pdf",
		strings.NewReader("%PDF-1.4"))

	assert.NoError(t, err)
	assert.Equal(t, model.RequestPending, request.RequestStatus)
	assert.Equal(t, profileID, request.ProfileID)
	assert.Equal(t, model.VerificationPending, user.VerificationStatus)
	requestRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestUploadProofRejectedWhileRequestActive(t *testing.T) {
	for _, status := range []model.VerificationStatus{model.VerificationPending, model.VerificationApproved} {
		t.Run(string(status), func(t *testing.T) {
			userID := uuid.New()
			userRepo := new(MockUserRepository)
			requestRepo := new(MockVerificationRepository)
			userRepo.On("FindByID", mock.Anything, userID).
				Return(&model.User{ID: userID, VerificationStatus: status}, nil)

			svc := newVerificationService(userRepo, new(MockProfileRepository), requestRepo, new(MockProofStore))
			_, err := svc.UploadProof(context.Background(), userID, "salary.pdf", "application/pdf",
				strings.NewReader("x"))

			assert.ErrorIs(t, err, apperrors.ErrVerificationActive)
			requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUploadProofBlockedAfterRejection(t *testing.T) {
	userID := uuid.New()
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	requestRepo := new(MockVerificationRepository)
	proofs := new(MockProofStore)

	// The profile still carries the PAN cached during the rejected cycle;
	// that must not reopen the flow without a fresh profile submission.
	user := &model.User{ID: userID, VerificationStatus: model.VerificationRejected}
	userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

	svc := newVerificationService(userRepo, profileRepo, requestRepo, proofs)
	_, err := svc.UploadProof(context.Background(), userID, "salary.pdf", "application/pdf",
		strings.NewReader("x"))

	assert.ErrorIs(t, err, apperrors.ErrVerificationClosed)
	assert.Equal(t, model.VerificationRejected, user.VerificationStatus)
	requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	proofs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadProofRequiresVerifiedDetails(t *testing.T) {
	userID := uuid.New()
	userRepo := new(MockUserRepository)
	profileRepo := new(MockProfileRepository)
	proofs := new(MockProofStore)

	userRepo.On("FindByID", mock.Anything, userID).
		Return(&model.User{ID: userID, VerificationStatus: model.VerificationNotStarted}, nil)
	profileRepo.On("FindByUserID", mock.Anything, userID).
		Return(&model.FinancialProfile{UserID: userID, PAN: ""}, nil)

	svc := newVerificationService(userRepo, profileRepo, new(MockVerificationRepository), proofs)
	_, err := svc.UploadProof(context.Background(), userID, "salary.pdf", "application/pdf",
		strings.NewReader("x"))

	assert.ErrorIs(t, err, apperrors.ErrDetailsNotVerified)
	proofs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecideApprovalAddsVerificationBonus(t *testing.T) {
	requestID := uuid.New()
	userID := uuid.New()

	userRepo := new(MockUserRepository)
	requestRepo := new(MockVerificationRepository)

	request := &model.VerificationRequest{ID: requestID, UserID: userID, RequestStatus: model.RequestPending}
	user := &model.User{ID: userID, CrediScore: 700, VerificationStatus: model.VerificationPending}

	requestRepo.On("FindByIDForUpdate", mock.Anything, requestID).Return(request, nil)
	requestRepo.On("Update", mock.Anything, request).Return(nil)
	userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	svc := newVerificationService(userRepo, new(MockProfileRepository), requestRepo, new(MockProofStore))
	err := svc.Decide(context.Background(), requestID, true, "looks good")

	assert.NoError(t, err)
	assert.Equal(t, model.RequestApproved, request.RequestStatus)
	assert.Equal(t, "looks good", request.AdminNote)
	assert.Equal(t, model.VerificationApproved, user.VerificationStatus)
	assert.Equal(t, 750, user.CrediScore)
	assert.Equal(t, "looks good", user.AdminNote)
}

func TestDecideApprovalBonusCapsAtMaxScore(t *testing.T) {
	requestID := uuid.New()
	userID := uuid.New()

	userRepo := new(MockUserRepository)
	requestRepo := new(MockVerificationRepository)

	request := &model.VerificationRequest{ID: requestID, UserID: userID, RequestStatus: model.RequestPending}
	user := &model.User{ID: userID, CrediScore: 880, VerificationStatus: model.VerificationPending}

	requestRepo.On("FindByIDForUpdate", mock.Anything, requestID).Return(request, nil)
	requestRepo.On("Update", mock.Anything, request).Return(nil)
	userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	svc := newVerificationService(userRepo, new(MockProfileRepository), requestRepo, new(MockProofStore))
	err := svc.Decide(context.Background(), requestID, true, "")

	assert.NoError(t, err)
	assert.Equal(t, MaxScore, user.CrediScore)
}

func TestDecideRejectionLeavesScoreUntouched(t *testing.T) {
	requestID := uuid.New()
	userID := uuid.New()

	userRepo := new(MockUserRepository)
	requestRepo := new(MockVerificationRepository)

	request := &model.VerificationRequest{ID: requestID, UserID: userID, RequestStatus: model.RequestPending}
	user := &model.User{ID: userID, CrediScore: 700, VerificationStatus: model.VerificationPending}

	requestRepo.On("FindByIDForUpdate", mock.Anything, requestID).Return(request, nil)
	requestRepo.On("Update", mock.Anything, request).Return(nil)
	userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	svc := newVerificationService(userRepo, new(MockProfileRepository), requestRepo, new(MockProofStore))
	err := svc.Decide(context.Background(), requestID, false, "income proof unreadable")

	assert.NoError(t, err)
	assert.Equal(t, model.RequestRejected, request.RequestStatus)
	assert.Equal(t, model.VerificationRejected, user.VerificationStatus)
	assert.Equal(t, 700, user.CrediScore)
}

func TestDecideTwiceAppliesBonusOnce(t *testing.T) {
	requestID := uuid.New()
	userID := uuid.New()

	userRepo := new(MockUserRepository)
	requestRepo := new(MockVerificationRepository)

	request := &model.VerificationRequest{ID: requestID, UserID: userID, RequestStatus: model.RequestPending}
	user := &model.User{ID: userID, CrediScore: 700, VerificationStatus: model.VerificationPending}

	requestRepo.On("FindByIDForUpdate", mock.Anything, requestID).Return(request, nil)
	requestRepo.On("Update", mock.Anything, request).Return(nil)
	userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	svc := newVerificationService(userRepo, new(MockProfileRepository), requestRepo, new(MockProofStore))
	assert.NoError(t, svc.Decide(context.Background(), requestID, true, ""))

	// The second decide reads the now-decided row; the one-time bonus must
	// not be re-applied.
	err := svc.Decide(context.Background(), requestID, true, "")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)
	assert.Equal(t, 750, user.CrediScore)
	requestRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestDecideAlreadyDecided(t *testing.T) {
	requestID := uuid.New()
	requestRepo := new(MockVerificationRepository)
	requestRepo.On("FindByIDForUpdate", mock.Anything, requestID).
		Return(&model.VerificationRequest{ID: requestID, RequestStatus: model.RequestApproved}, nil)

	svc := newVerificationService(new(MockUserRepository), new(MockProfileRepository), requestRepo, new(MockProofStore))
	err := svc.Decide(context.Background(), requestID, false, "")

	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)
	requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOpenProofWithoutAttachment(t *testing.T) {
	profileID := uuid.New()
	profileRepo := new(MockProfileRepository)
	profileRepo.On("FindByID", mock.Anything, profileID).
		Return(&model.FinancialProfile{ID: profileID}, nil)

	svc := newVerificationService(new(MockUserRepository), profileRepo, new(MockVerificationRepository), new(MockProofStore))
	_, err := svc.OpenProof(context.Background(), profileID)

	assert.ErrorIs(t, err, apperrors.ErrProofNotFound)
}
