package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/indersauwalia/CrediScore/internal/blob"
	"github.com/indersauwalia/CrediScore/internal/cache"
	apperrors "github.com/indersauwalia/CrediScore/internal/errors"
	"github.com/indersauwalia/CrediScore/internal/kyc"
	"github.com/indersauwalia/CrediScore/internal/model"
	"github.com/indersauwalia/CrediScore/internal/repository"
)

// ProofDocument is an opened proof file ready for streaming to an admin.
type ProofDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// VerificationService runs the income verification flow: bank detail check
// against the KYC oracle, proof upload, and admin decisions.
type VerificationService interface {
	// VerifyDetails checks the submitted identifiers against the oracle and
	// caches them onto the user's profile on success.
	VerifyDetails(ctx context.Context, userID uuid.UUID, pan, accountNo, ifsc string) error
	// UploadProof stores the proof document and opens a pending
	// verification request, moving the user to pending.
	UploadProof(ctx context.Context, userID uuid.UUID, filename, contentType string, r io.Reader) (*model.VerificationRequest, error)
	// Decide applies an admin approval or rejection to a pending request
	// and synchronizes the user's verification status.
	Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error
	// ListPending returns undecided requests, newest first.
	ListPending(ctx context.Context) ([]model.VerificationRequest, error)
	// OpenProof fetches the proof document attached to a profile.
	OpenProof(ctx context.Context, profileID uuid.UUID) (*ProofDocument, error)
}

type verificationService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	requestRepo repository.VerificationRepository
	proofs      blob.Store
	oracle      *kyc.Oracle
	cache       *cache.Client
	logger      *slog.Logger
}

// NewVerificationService creates a new verification service.
func NewVerificationService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	requestRepo repository.VerificationRepository,
	proofs blob.Store,
	oracle *kyc.Oracle,
	cache *cache.Client,
	logger *slog.Logger,
) VerificationService {
	return &verificationService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		requestRepo: requestRepo,
		proofs:      proofs,
		oracle:      oracle,
		cache:       cache,
		logger:      logger,
	}
}

func (s *verificationService) VerifyDetails(ctx context.Context, userID uuid.UUID, pan, accountNo, ifsc string) error {
	if err := kyc.ValidateDetails(pan, accountNo, ifsc); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	if _, err := s.profileRepo.FindByUserID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProfileNotFound
		}
		return err
	}

	if !s.oracle.Verify(pan, accountNo, ifsc, user.Name) {
		return apperrors.ErrDetailsMismatch
	}

	return s.profileRepo.AttachBankDetails(ctx, userID,
		strings.ToUpper(pan), accountNo, strings.ToUpper(ifsc))
}

func (s *verificationService) UploadProof(ctx context.Context, userID uuid.UUID, filename, contentType string, r io.Reader) (*model.VerificationRequest, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	switch user.VerificationStatus {
	case model.VerificationPending, model.VerificationApproved:
		return nil, apperrors.ErrVerificationActive
	case model.VerificationRejected:
		// Re-pending after a rejection requires a fresh profile submission
		// and a new detail-verification pass.
		return nil, apperrors.ErrVerificationClosed
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	if profile.PAN == "" {
		return nil, apperrors.ErrDetailsNotVerified
	}

	fileID, err := s.proofs.Save(ctx, filename, contentType, r)
	if err != nil {
		return nil, err
	}
	profile, err = s.profileRepo.AttachProof(ctx, userID, fileID, filename)
	if err != nil {
		return nil, err
	}

	request := &model.VerificationRequest{
		UserID:        userID,
		ProfileID:     profile.ID,
		RequestStatus: model.RequestPending,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	// Request row is authoritative; the user status sync is best-effort
	// and the admin decision re-synchronizes it either way.
	user.VerificationStatus = model.VerificationPending
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("sync verification status to user failed",
			"user_id", userID, "request_id", request.ID, "error", err)
	}

	_ = s.cache.Delete(ctx, cache.CreditSummaryKey(userID))
	return request, nil
}

func (s *verificationService) Decide(ctx context.Context, requestID uuid.UUID, approve bool, note string) error {
	var request *model.VerificationRequest
	err := s.requestRepo.WithTransaction(ctx, func(requests repository.VerificationRepository) error {
		var err error
		// Locking read so concurrent decides of the same request cannot
		// both pass the already-decided guard and re-apply the bonus.
		request, err = requests.FindByIDForUpdate(ctx, requestID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrRequestNotFound
			}
			return err
		}
		if request.Decided() {
			return apperrors.ErrAlreadyDecided
		}

		if approve {
			request.RequestStatus = model.RequestApproved
		} else {
			request.RequestStatus = model.RequestRejected
		}
		if note != "" {
			request.AdminNote = note
		}
		return requests.Update(ctx, request)
	})
	if err != nil {
		return err
	}

	// Sync the canonical user status. Best-effort: the request row has been
	// decided and stays authoritative for audit if this write fails.
	user, err := s.userRepo.FindByID(ctx, request.UserID)
	if err != nil {
		s.logger.Error("load user for verification sync failed",
			"user_id", request.UserID, "request_id", request.ID, "error", err)
		return nil
	}
	user.VerificationStatus = model.VerificationStatus(request.RequestStatus)
	if note != "" {
		user.AdminNote = note
	}
	if approve {
		user.CrediScore += VerificationBonus
		if user.CrediScore > MaxScore {
			user.CrediScore = MaxScore
		}
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("sync verification decision to user failed",
			"user_id", user.ID, "request_id", request.ID, "error", err)
		return nil
	}

	_ = s.cache.Delete(ctx, cache.CreditSummaryKey(user.ID))
	s.logger.Info("verification decided",
		"request_id", request.ID, "user_id", user.ID, "status", request.RequestStatus)
	return nil
}

func (s *verificationService) ListPending(ctx context.Context) ([]model.VerificationRequest, error) {
	return s.requestRepo.ListByStatus(ctx, model.RequestPending)
}

func (s *verificationService) OpenProof(ctx context.Context, profileID uuid.UUID) (*ProofDocument, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	if profile.ProofFileID == nil {
		return nil, apperrors.ErrProofNotFound
	}

	file, err := s.proofs.Open(ctx, *profile.ProofFileID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProofNotFound
		}
		return nil, err
	}
	return &ProofDocument{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	}, nil
}
