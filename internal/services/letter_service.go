package services

import (
	"errors"
	"fmt"

	"membermgr_backend/internal/models"
	"membermgr_backend/internal/repositories"
)

// --- Custom Service Errors for Letter Generation ---
var (
	// ErrNoMemberships means the member has no membership on record; a welcome
	// letter needs at least one.
	ErrNoMemberships = errors.New("member has no memberships")

	ErrLetterRender = errors.New("welcome letter rendering failed")
)

// LetterRenderer renders a welcome letter for a member and one of their
// memberships, returning the path of the written document.
type LetterRenderer interface {
	Render(member *models.Member, membership *models.Membership) (string, error)
}

// --- LetterService Interface ---
type LetterService interface {
	GenerateWelcomeLetter(memberID int64) (string, error)
}

type letterService struct {
	memberRepo     repositories.MemberRepository
	membershipRepo repositories.MembershipRepository
	renderer       LetterRenderer
	pricing        models.MembershipPricing
}

// NewLetterService creates a new instance of LetterService.
func NewLetterService(
	mr repositories.MemberRepository,
	msr repositories.MembershipRepository,
	renderer LetterRenderer,
	pricing models.MembershipPricing,
) LetterService {
	return &letterService{
		memberRepo:     mr,
		membershipRepo: msr,
		renderer:       renderer,
		pricing:        pricing,
	}
}

// GenerateWelcomeLetter renders the PDF welcome letter for a member,
// preferring their first unpaid membership. Returns the output path.
func (s *letterService) GenerateWelcomeLetter(memberID int64) (string, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrMemberNotFound
		}
		return "", fmt.Errorf("failed to load member for letter generation: %w", err)
	}

	memberships, err := s.membershipRepo.GetMembershipsByMemberID(memberID)
	if err != nil {
		return "", fmt.Errorf("failed to load memberships for letter generation: %w", err)
	}
	if len(memberships) == 0 {
		return "", ErrNoMemberships
	}

	membership := memberships[0]
	for _, m := range memberships {
		if m.Amount <= s.pricing.UnpaidThreshold {
			membership = m
			break
		}
	}

	path, err := s.renderer.Render(member, &membership)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLetterRender, err)
	}
	return path, nil
}
