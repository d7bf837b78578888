package handlers

import (
	"net/http"
	"testing"

	"membermgr_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubLetterService struct {
	GenerateWelcomeLetterFunc func(memberID int64) (string, error)
}

func (s *stubLetterService) GenerateWelcomeLetter(memberID int64) (string, error) {
	return s.GenerateWelcomeLetterFunc(memberID)
}

func newLetterTestRouter(svc services.LetterService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLetterHandler(svc)
	r := gin.New()
	r.POST("/members/:member_id/generate_welcome_letter", h.GenerateWelcomeLetter)
	return r
}

func TestGenerateWelcomeLetterEndpoint_OK(t *testing.T) {
	svc := &stubLetterService{
		GenerateWelcomeLetterFunc: func(memberID int64) (string, error) {
			assert.Equal(t, int64(7), memberID)
			return "/letters/welcome_letter_2000000000.pdf", nil
		},
	}
	r := newLetterTestRouter(svc)

	w := performRequest(t, r, http.MethodPost, "/members/7/generate_welcome_letter", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "PDF generated successfully", body["message"])
	assert.Equal(t, "/letters/welcome_letter_2000000000.pdf", body["path"])
}

func TestGenerateWelcomeLetterEndpoint_MemberMissing(t *testing.T) {
	svc := &stubLetterService{
		GenerateWelcomeLetterFunc: func(memberID int64) (string, error) {
			return "", services.ErrMemberNotFound
		},
	}
	r := newLetterTestRouter(svc)

	w := performRequest(t, r, http.MethodPost, "/members/42/generate_welcome_letter", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateWelcomeLetterEndpoint_NoMemberships(t *testing.T) {
	svc := &stubLetterService{
		GenerateWelcomeLetterFunc: func(memberID int64) (string, error) {
			return "", services.ErrNoMemberships
		},
	}
	r := newLetterTestRouter(svc)

	w := performRequest(t, r, http.MethodPost, "/members/7/generate_welcome_letter", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateWelcomeLetterEndpoint_RenderFailure(t *testing.T) {
	svc := &stubLetterService{
		GenerateWelcomeLetterFunc: func(memberID int64) (string, error) {
			return "", services.ErrLetterRender
		},
	}
	r := newLetterTestRouter(svc)

	w := performRequest(t, r, http.MethodPost, "/members/7/generate_welcome_letter", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
