package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"membermgr_backend/internal/services"
	"membermgr_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MembershipHandler holds the membership service.
type MembershipHandler struct {
	membershipService services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(ms services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: ms}
}

// CreateMembershipForMember handles a manual membership correction for an
// existing member. Payment flags are derived from the amount server-side.
func (h *MembershipHandler) CreateMembershipForMember(c *gin.Context) {
	memberID, err := utils.StrToInt64(c.Param("member_id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid member ID format.", err.Error()))
		return
	}

	var req services.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMembershipForMember: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	membership, err := h.membershipService.CreateMembershipForMember(memberID, req)
	if err != nil {
		utils.LogError(err, "CreateMembershipForMember: Error from membershipService")
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else if errors.Is(err, services.ErrMembershipValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create membership.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    fmt.Sprintf("Membership for year %d created for member ID %d.", membership.Year, memberID),
		"membership": membership,
	})
}

// GetMembershipByID fetches a single membership record.
func (h *MembershipHandler) GetMembershipByID(c *gin.Context) {
	membershipID, err := utils.StrToInt64(c.Param("membership_id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid membership ID format.", err.Error()))
		return
	}

	membership, err := h.membershipService.GetMembershipByID(membershipID)
	if err != nil {
		utils.LogError(err, "GetMembershipByID: Error from membershipService")
		if errors.Is(err, services.ErrMembershipNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, membership)
}
