package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"membermgr_backend/internal/models"
	"membermgr_backend/internal/services"
	"membermgr_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member service.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: ms}
}

func respondMemberError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": Error from memberService")
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
	case errors.Is(err, services.ErrEmailExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already exists.", err.Error()))
	case errors.Is(err, services.ErrMemberValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process member request.", "Internal error"))
	}
}

// CreateMember handles admin creation of a member without a membership.
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req services.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMember: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	member, err := h.memberService.CreateMember(req)
	if err != nil {
		respondMemberError(c, err, "CreateMember")
		return
	}
	c.JSON(http.StatusCreated, member)
}

// RegisterMember handles the registration flow: member plus an unpaid
// membership for the current year, created atomically.
func (h *MemberHandler) RegisterMember(c *gin.Context) {
	var req services.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RegisterMember: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	member, err := h.memberService.RegisterMember(req)
	if err != nil {
		respondMemberError(c, err, "RegisterMember")
		return
	}
	c.JSON(http.StatusCreated, member)
}

// GetMembers handles the paginated member listing.
func (h *MemberHandler) GetMembers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	searchTerm := c.Query("search")

	var pSearchTerm *string
	if searchTerm != "" {
		pSearchTerm = &searchTerm
	}

	members, totalCount, err := h.memberService.GetMembers(page, pageSize, pSearchTerm)
	if err != nil {
		respondMemberError(c, err, "GetMembers")
		return
	}
	if members == nil {
		members = []models.Member{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      members,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateMember handles a partial member patch.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	memberID, err := utils.StrToInt64(c.Param("member_id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid member ID format.", err.Error()))
		return
	}

	var req services.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateMember: Failed to bind JSON")
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	member, err := h.memberService.UpdateMember(memberID, req)
	if err != nil {
		respondMemberError(c, err, "UpdateMember")
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteMember handles member deletion. Memberships cascade.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	memberID, err := utils.StrToInt64(c.Param("member_id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid member ID format.", err.Error()))
		return
	}

	if err := h.memberService.DeleteMember(memberID); err != nil {
		respondMemberError(c, err, "DeleteMember")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}

// GetMemberByReference fetches a member with memberships by reference number.
func (h *MemberHandler) GetMemberByReference(c *gin.Context) {
	referenceNumber, err := utils.StrToInt64(c.Param("reference_number"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid reference number format.", err.Error()))
		return
	}

	member, err := h.memberService.GetMemberByReferenceNumber(referenceNumber)
	if err != nil {
		respondMemberError(c, err, "GetMemberByReference")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) respondSearchResults(c *gin.Context, members []models.Member, err error, action string) {
	if err != nil {
		respondMemberError(c, err, action)
		return
	}
	if members == nil {
		members = []models.Member{}
	}
	c.JSON(http.StatusOK, gin.H{"results": members})
}

// SearchByFullName matches the computed full name, case-insensitive substring.
func (h *MemberHandler) SearchByFullName(c *gin.Context) {
	members, err := h.memberService.SearchByFullName(c.Param("name"))
	h.respondSearchResults(c, members, err, "SearchByFullName")
}

// SearchByName matches first or last name, case-insensitive substring.
func (h *MemberHandler) SearchByName(c *gin.Context) {
	members, err := h.memberService.SearchByFirstOrLastName(c.Param("name"))
	h.respondSearchResults(c, members, err, "SearchByName")
}

// SearchByCity matches the city, case-insensitive substring.
func (h *MemberHandler) SearchByCity(c *gin.Context) {
	members, err := h.memberService.SearchByCity(c.Param("city"))
	h.respondSearchResults(c, members, err, "SearchByCity")
}

// SearchByPostalCode is an exact postal code match.
func (h *MemberHandler) SearchByPostalCode(c *gin.Context) {
	members, err := h.memberService.SearchByPostalCode(c.Param("postal_code"))
	h.respondSearchResults(c, members, err, "SearchByPostalCode")
}
