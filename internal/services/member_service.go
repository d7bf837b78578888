package services

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"membermgr_backend/internal/models"
	"membermgr_backend/internal/repositories"
)

// --- Custom Service Errors for Member ---
var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrEmailExists      = errors.New("email already exists")
	ErrMemberValidation = errors.New("member data validation error")
)

var (
	postalCodeRegex = regexp.MustCompile(`^\d{3,10}$`)
	phoneRegex      = regexp.MustCompile(`^\+?\d[\d\s]*$`)
	emailRegex      = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)
)

// OptionalString distinguishes an absent JSON field from an explicit null.
// Absent leaves the stored value untouched; null clears it.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON marks the field as present and keeps Value nil for JSON null.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// --- Member DTOs ---
type CreateMemberRequest struct {
	FirstName     string  `json:"first_name" binding:"required"`
	LastName      string  `json:"last_name" binding:"required"`
	City          string  `json:"city" binding:"required"`
	StreetAddress *string `json:"street_address"`
	PostalCode    *string `json:"postal_code"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Notes         *string `json:"notes"`
	NoPostalMail  *bool   `json:"no_postal_mail"`
}

// UpdateMemberRequest carries a partial patch. Required fields use plain
// pointers (nil = leave as is, null is rejected by validation); optional
// fields use OptionalString so an explicit null clears them.
type UpdateMemberRequest struct {
	FirstName     *string        `json:"first_name"`
	LastName      *string        `json:"last_name"`
	City          *string        `json:"city"`
	StreetAddress OptionalString `json:"street_address"`
	PostalCode    OptionalString `json:"postal_code"`
	Phone         OptionalString `json:"phone"`
	Email         OptionalString `json:"email"`
	Notes         OptionalString `json:"notes"`
	NoPostalMail  *bool          `json:"no_postal_mail"`
}

// --- MemberService Interface ---
type MemberService interface {
	CreateMember(req CreateMemberRequest) (*models.Member, error)
	RegisterMember(req CreateMemberRequest) (*models.Member, error)
	GetMemberByReferenceNumber(referenceNumber int64) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error)
	UpdateMember(memberID int64, req UpdateMemberRequest) (*models.Member, error)
	DeleteMember(memberID int64) error
	SearchByFullName(needle string) ([]models.Member, error)
	SearchByFirstOrLastName(needle string) ([]models.Member, error)
	SearchByCity(needle string) ([]models.Member, error)
	SearchByPostalCode(postalCode string) ([]models.Member, error)
}

// --- memberService Implementation ---
type memberService struct {
	memberRepo     repositories.MemberRepository
	membershipRepo repositories.MembershipRepository
	db             *sql.DB // For managing transactions
	pricing        models.MembershipPricing
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(
	mr repositories.MemberRepository,
	msr repositories.MembershipRepository,
	db *sql.DB,
	pricing models.MembershipPricing,
) MemberService {
	return &memberService{
		memberRepo:     mr,
		membershipRepo: msr,
		db:             db,
		pricing:        pricing,
	}
}

func validateNameField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrMemberValidation, field)
	}
	if len(value) > 100 {
		return fmt.Errorf("%w: %s must be at most 100 characters", ErrMemberValidation, field)
	}
	return nil
}

func (s *memberService) validateMemberData(member *models.Member, memberID int64) error {
	if err := validateNameField("first name", member.FirstName); err != nil {
		return err
	}
	if err := validateNameField("last name", member.LastName); err != nil {
		return err
	}
	if err := validateNameField("city", member.City); err != nil {
		return err
	}

	if member.PostalCode != nil && !postalCodeRegex.MatchString(*member.PostalCode) {
		return fmt.Errorf("%w: postal code must be 3-10 digits", ErrMemberValidation)
	}
	if member.Phone != nil && !phoneRegex.MatchString(*member.Phone) {
		return fmt.Errorf("%w: phone format is invalid", ErrMemberValidation)
	}

	if member.Email != nil {
		em := strings.ToLower(strings.TrimSpace(*member.Email))
		if !emailRegex.MatchString(em) {
			return fmt.Errorf("%w: email format is invalid", ErrMemberValidation)
		}
		existing, err := s.memberRepo.GetMemberByEmail(em)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if existing != nil && existing.ID != memberID {
			return ErrEmailExists
		}
	}
	return nil
}

func memberFromCreateRequest(req CreateMemberRequest) *models.Member {
	member := &models.Member{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		City:          req.City,
		StreetAddress: req.StreetAddress,
		PostalCode:    req.PostalCode,
		Phone:         req.Phone,
		Email:         req.Email,
		Notes:         req.Notes,
	}
	if req.NoPostalMail != nil {
		member.NoPostalMail = *req.NoPostalMail
	}
	return member
}

// CreateMember validates and persists a new member. The reference number and
// full name come back from the database.
func (s *memberService) CreateMember(req CreateMemberRequest) (*models.Member, error) {
	member := memberFromCreateRequest(req)
	if err := s.validateMemberData(member, 0); err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.CreateMember(s.db, member); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create member in repository: %w", err)
	}
	member.Memberships = []models.Membership{}
	return member, nil
}

// RegisterMember creates a member together with an unpaid membership for the
// current calendar year. Both rows are committed in one transaction so a
// mid-flight failure leaves no orphan member.
func (s *memberService) RegisterMember(req CreateMemberRequest) (*models.Member, error) {
	member := memberFromCreateRequest(req)
	if err := s.validateMemberData(member, 0); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.memberRepo.CreateMember(tx, member); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create member record: %w", err)
	}

	membership := &models.Membership{
		MemberID: member.ID,
		Year:     time.Now().Year(),
	}
	membership.ApplyAmount(s.pricing, 0)

	if _, err := s.membershipRepo.CreateMembership(tx, membership); err != nil {
		return nil, fmt.Errorf("failed to create registration membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration transaction: %w", err)
	}

	member.Memberships = []models.Membership{*membership}
	return member, nil
}

// GetMemberByReferenceNumber returns the member with memberships eagerly loaded.
func (s *memberService) GetMemberByReferenceNumber(referenceNumber int64) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByReferenceNumber(referenceNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by reference number: %w", err)
	}
	return member, nil
}

// GetMembers returns a paginated member listing.
func (s *memberService) GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	members, totalCount, err := s.memberRepo.GetMembers(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get members: %w", err)
	}
	return members, totalCount, nil
}

// UpdateMember applies a partial patch. Absent fields are left untouched;
// explicit nulls clear optional fields; required fields cannot be cleared.
func (s *memberService) UpdateMember(memberID int64, req UpdateMemberRequest) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member for update: %w", err)
	}

	if req.FirstName != nil {
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		member.LastName = *req.LastName
	}
	if req.City != nil {
		member.City = *req.City
	}
	if req.StreetAddress.Set {
		member.StreetAddress = req.StreetAddress.Value
	}
	if req.PostalCode.Set {
		member.PostalCode = req.PostalCode.Value
	}
	if req.Phone.Set {
		member.Phone = req.Phone.Value
	}
	if req.Email.Set {
		member.Email = req.Email.Value
	}
	if req.Notes.Set {
		member.Notes = req.Notes.Value
	}
	if req.NoPostalMail != nil {
		member.NoPostalMail = *req.NoPostalMail
	}

	if err := s.validateMemberData(member, memberID); err != nil {
		return nil, err
	}

	if err := s.memberRepo.UpdateMember(s.db, member); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to update member in repository: %w", err)
	}

	// Re-read so the caller sees the recomputed full_name and modified_at.
	updated, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload member after update: %w", err)
	}
	return updated, nil
}

// DeleteMember removes a member; owned memberships are removed by cascade.
func (s *memberService) DeleteMember(memberID int64) error {
	err := s.memberRepo.DeleteMember(s.db, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

func (s *memberService) SearchByFullName(needle string) ([]models.Member, error) {
	members, err := s.memberRepo.SearchByFullName(needle)
	if err != nil {
		return nil, fmt.Errorf("failed to search members by full name: %w", err)
	}
	return members, nil
}

func (s *memberService) SearchByFirstOrLastName(needle string) ([]models.Member, error) {
	members, err := s.memberRepo.SearchByFirstOrLastName(needle)
	if err != nil {
		return nil, fmt.Errorf("failed to search members by name: %w", err)
	}
	return members, nil
}

func (s *memberService) SearchByCity(needle string) ([]models.Member, error) {
	members, err := s.memberRepo.SearchByCity(needle)
	if err != nil {
		return nil, fmt.Errorf("failed to search members by city: %w", err)
	}
	return members, nil
}

func (s *memberService) SearchByPostalCode(postalCode string) ([]models.Member, error) {
	members, err := s.memberRepo.SearchByPostalCode(postalCode)
	if err != nil {
		return nil, fmt.Errorf("failed to search members by postal code: %w", err)
	}
	return members, nil
}
