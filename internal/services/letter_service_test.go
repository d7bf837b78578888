package services

import (
	"errors"
	"testing"

	"membermgr_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	path       string
	err        error
	membership *models.Membership
}

func (r *stubRenderer) Render(member *models.Member, membership *models.Membership) (string, error) {
	r.membership = membership
	return r.path, r.err
}

func TestGenerateWelcomeLetter_PrefersUnpaidMembership(t *testing.T) {
	membershipRepo := &stubMembershipRepo{
		GetMembershipsByMemberIDFunc: func(memberID int64) ([]models.Membership, error) {
			return []models.Membership{
				{ID: 1, MemberID: memberID, Year: 2025, Amount: 25, IsPaid: true},
				{ID: 2, MemberID: memberID, Year: 2026, Amount: 0},
			}, nil
		},
	}
	renderer := &stubRenderer{path: "/letters/welcome_letter_2000000000.pdf"}
	svc := NewLetterService(existingMemberRepo(), membershipRepo, renderer, defaultPricing)

	path, err := svc.GenerateWelcomeLetter(7)

	require.NoError(t, err)
	assert.Equal(t, "/letters/welcome_letter_2000000000.pdf", path)
	require.NotNil(t, renderer.membership)
	assert.Equal(t, int64(2), renderer.membership.ID, "the unpaid membership is chosen over the paid one")
}

func TestGenerateWelcomeLetter_FallsBackToFirstMembership(t *testing.T) {
	membershipRepo := &stubMembershipRepo{
		GetMembershipsByMemberIDFunc: func(memberID int64) ([]models.Membership, error) {
			return []models.Membership{
				{ID: 3, MemberID: memberID, Year: 2025, Amount: 25, IsPaid: true},
				{ID: 4, MemberID: memberID, Year: 2026, Amount: 25, IsPaid: true},
			}, nil
		},
	}
	renderer := &stubRenderer{path: "/letters/welcome_letter_2000000000.pdf"}
	svc := NewLetterService(existingMemberRepo(), membershipRepo, renderer, defaultPricing)

	_, err := svc.GenerateWelcomeLetter(7)

	require.NoError(t, err)
	require.NotNil(t, renderer.membership)
	assert.Equal(t, int64(3), renderer.membership.ID)
}

func TestGenerateWelcomeLetter_NoMemberships(t *testing.T) {
	svc := NewLetterService(existingMemberRepo(), &stubMembershipRepo{}, &stubRenderer{}, defaultPricing)

	_, err := svc.GenerateWelcomeLetter(7)
	assert.ErrorIs(t, err, ErrNoMemberships)
}

func TestGenerateWelcomeLetter_MemberMissing(t *testing.T) {
	svc := NewLetterService(&stubMemberRepo{}, &stubMembershipRepo{}, &stubRenderer{}, defaultPricing)

	_, err := svc.GenerateWelcomeLetter(42)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestGenerateWelcomeLetter_RenderFailure(t *testing.T) {
	membershipRepo := &stubMembershipRepo{
		GetMembershipsByMemberIDFunc: func(memberID int64) ([]models.Membership, error) {
			return []models.Membership{{ID: 1, MemberID: memberID, Year: 2026}}, nil
		},
	}
	renderer := &stubRenderer{err: errors.New("disk full")}
	svc := NewLetterService(existingMemberRepo(), membershipRepo, renderer, defaultPricing)

	_, err := svc.GenerateWelcomeLetter(7)
	assert.ErrorIs(t, err, ErrLetterRender)
}
