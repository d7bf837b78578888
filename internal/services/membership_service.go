package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"membermgr_backend/internal/models"
	"membermgr_backend/internal/repositories"
)

// --- Custom Service Errors for Membership ---
var (
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrMembershipValidation = errors.New("membership data validation error")
)

// CreateMembershipRequest is the payload for a manual membership correction.
// Year defaults to the current calendar year; amount defaults to 0 (unpaid).
type CreateMembershipRequest struct {
	Year   *int `json:"year"`
	Amount *int `json:"amount"`
}

// --- MembershipService Interface ---
type MembershipService interface {
	CreateMembershipForMember(memberID int64, req CreateMembershipRequest) (*models.Membership, error)
	GetMembershipByID(membershipID int64) (*models.Membership, error)
}

type membershipService struct {
	membershipRepo repositories.MembershipRepository
	memberRepo     repositories.MemberRepository
	db             *sql.DB
	pricing        models.MembershipPricing
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(
	msr repositories.MembershipRepository,
	mr repositories.MemberRepository,
	db *sql.DB,
	pricing models.MembershipPricing,
) MembershipService {
	return &membershipService{
		membershipRepo: msr,
		memberRepo:     mr,
		db:             db,
		pricing:        pricing,
	}
}

// CreateMembershipForMember validates the owning member exists and persists a
// membership with payment flags derived from the amount.
func (s *membershipService) CreateMembershipForMember(memberID int64, req CreateMembershipRequest) (*models.Membership, error) {
	if _, err := s.memberRepo.GetMemberByID(memberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to check member existence: %w", err)
	}

	amount := 0
	if req.Amount != nil {
		amount = *req.Amount
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrMembershipValidation)
	}

	year := time.Now().Year()
	if req.Year != nil {
		year = *req.Year
	}

	membership := &models.Membership{
		MemberID: memberID,
		Year:     year,
	}
	membership.ApplyAmount(s.pricing, amount)

	if _, err := s.membershipRepo.CreateMembership(s.db, membership); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to create membership in repository: %w", err)
	}
	return membership, nil
}

// GetMembershipByID returns a single membership record.
func (s *membershipService) GetMembershipByID(membershipID int64) (*models.Membership, error) {
	membership, err := s.membershipRepo.GetMembershipByID(membershipID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership by ID: %w", err)
	}
	return membership, nil
}
