package handlers

import (
	"net/http"
	"testing"

	"membermgr_backend/internal/models"
	"membermgr_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMembershipService struct {
	CreateMembershipForMemberFunc func(memberID int64, req services.CreateMembershipRequest) (*models.Membership, error)
	GetMembershipByIDFunc         func(membershipID int64) (*models.Membership, error)
}

func (s *stubMembershipService) CreateMembershipForMember(memberID int64, req services.CreateMembershipRequest) (*models.Membership, error) {
	return s.CreateMembershipForMemberFunc(memberID, req)
}

func (s *stubMembershipService) GetMembershipByID(membershipID int64) (*models.Membership, error) {
	return s.GetMembershipByIDFunc(membershipID)
}

func newMembershipTestRouter(svc services.MembershipService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMembershipHandler(svc)
	r := gin.New()
	r.POST("/members/:member_id/memberships", h.CreateMembershipForMember)
	r.GET("/memberships/:membership_id", h.GetMembershipByID)
	return r
}

func TestCreateMembershipEndpoint_Created(t *testing.T) {
	svc := &stubMembershipService{
		CreateMembershipForMemberFunc: func(memberID int64, req services.CreateMembershipRequest) (*models.Membership, error) {
			require.NotNil(t, req.Amount)
			return &models.Membership{
				ID: 5, MemberID: memberID, Year: 2026, Amount: *req.Amount,
				IsPaid: true, Discounted: true,
			}, nil
		},
	}
	r := newMembershipTestRouter(svc)

	w := performRequest(t, r, http.MethodPost, "/members/7/memberships", gin.H{"year": 2026, "amount": 10})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Membership for year 2026 created for member ID 7.", body["message"])
	membership, ok := body["membership"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, membership["is_paid"])
	assert.Equal(t, true, membership["discounted"])
}

func TestCreateMembershipEndpoint_MemberMissing(t *testing.T) {
	svc := &stubMembershipService{
		CreateMembershipForMemberFunc: func(memberID int64, req services.CreateMembershipRequest) (*models.Membership, error) {
			return nil, services.ErrMemberNotFound
		},
	}
	r := newMembershipTestRouter(svc)

	w := performRequest(t, r, http.MethodPost, "/members/42/memberships", gin.H{"year": 2026})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMembershipEndpoint_NegativeAmount(t *testing.T) {
	svc := &stubMembershipService{
		CreateMembershipForMemberFunc: func(memberID int64, req services.CreateMembershipRequest) (*models.Membership, error) {
			return nil, services.ErrMembershipValidation
		},
	}
	r := newMembershipTestRouter(svc)

	w := performRequest(t, r, http.MethodPost, "/members/7/memberships", gin.H{"amount": -5})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetMembershipEndpoint_OK(t *testing.T) {
	svc := &stubMembershipService{
		GetMembershipByIDFunc: func(membershipID int64) (*models.Membership, error) {
			return &models.Membership{ID: membershipID, MemberID: 7, Year: 2026}, nil
		},
	}
	r := newMembershipTestRouter(svc)

	w := performRequest(t, r, http.MethodGet, "/memberships/5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(5), body["id"])
}

func TestGetMembershipEndpoint_NotFound(t *testing.T) {
	svc := &stubMembershipService{
		GetMembershipByIDFunc: func(membershipID int64) (*models.Membership, error) {
			return nil, services.ErrMembershipNotFound
		},
	}
	r := newMembershipTestRouter(svc)

	w := performRequest(t, r, http.MethodGet, "/memberships/999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
