package handlers

import (
	"errors"
	"net/http"

	"membermgr_backend/internal/services"
	"membermgr_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LetterHandler holds the letter service.
type LetterHandler struct {
	letterService services.LetterService
}

// NewLetterHandler creates a new LetterHandler.
func NewLetterHandler(ls services.LetterService) *LetterHandler {
	return &LetterHandler{letterService: ls}
}

// GenerateWelcomeLetter renders the welcome letter PDF for a member and
// responds with the output path.
func (h *LetterHandler) GenerateWelcomeLetter(c *gin.Context) {
	memberID, err := utils.StrToInt64(c.Param("member_id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid member ID format.", err.Error()))
		return
	}

	path, err := h.letterService.GenerateWelcomeLetter(memberID)
	if err != nil {
		utils.LogError(err, "GenerateWelcomeLetter: Error from letterService")
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else if errors.Is(err, services.ErrNoMemberships) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodePreconditionFailed, "Member has no memberships.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate welcome letter.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "PDF generated successfully",
		"path":    path,
	})
}
