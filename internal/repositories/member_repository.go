package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"membermgr_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// memberColumns is the select list shared by all member queries. full_name,
// reference_number, created_at and modified_at are computed database-side.
const memberColumns = `id, first_name, last_name, full_name, city, street_address, postal_code,
	phone, email, notes, no_postal_mail, reference_number, created_at, modified_at`

// MemberRepository defines the interface for member-related database operations.
type MemberRepository interface {
	CreateMember(executor SQLExecutor, member *models.Member) (int64, error)
	GetMemberByID(id int64) (*models.Member, error)
	GetMemberByEmail(email string) (*models.Member, error)
	GetMemberByReferenceNumber(referenceNumber int64) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error)
	UpdateMember(executor SQLExecutor, member *models.Member) error
	DeleteMember(executor SQLExecutor, id int64) error
	SearchByFullName(needle string) ([]models.Member, error)
	SearchByFirstOrLastName(needle string) ([]models.Member, error)
	SearchByCity(needle string) ([]models.Member, error)
	SearchByPostalCode(postalCode string) ([]models.Member, error)
}

type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

func scanMember(s scanner, member *models.Member) error {
	return s.Scan(
		&member.ID, &member.FirstName, &member.LastName, &member.FullName, &member.City,
		&member.StreetAddress, &member.PostalCode, &member.Phone, &member.Email,
		&member.Notes, &member.NoPostalMail, &member.ReferenceNumber,
		&member.CreatedAt, &member.ModifiedAt,
	)
}

// CreateMember inserts a new member. The reference number comes from the
// database sequence (atomic, never reused) and full_name from the generated
// column; both are scanned back into the model along with the timestamps.
func (r *memberRepository) CreateMember(executor SQLExecutor, member *models.Member) (int64, error) {
	query := `INSERT INTO members (first_name, last_name, city, street_address, postal_code,
	            phone, email, notes, no_postal_mail)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, reference_number, full_name, created_at, modified_at`

	err := executor.QueryRow(query,
		member.FirstName, member.LastName, member.City, member.StreetAddress,
		member.PostalCode, member.Phone, member.Email, member.Notes, member.NoPostalMail,
	).Scan(&member.ID, &member.ReferenceNumber, &member.FullName, &member.CreatedAt, &member.ModifiedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating member: %v", ErrDatabaseError, err)
	}
	return member.ID, nil
}

// GetMemberByID retrieves a member by their internal ID.
func (r *memberRepository) GetMemberByID(id int64) (*models.Member, error) {
	member := &models.Member{}
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	err := scanMember(r.db.QueryRow(query, id), member)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return member, nil
}

// GetMemberByEmail retrieves a member by their email address.
func (r *memberRepository) GetMemberByEmail(email string) (*models.Member, error) {
	member := &models.Member{}
	query := `SELECT ` + memberColumns + ` FROM members WHERE LOWER(email) = LOWER($1)`

	err := scanMember(r.db.QueryRow(query, email), member)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by email %s: %v", ErrDatabaseError, email, err)
	}
	return member, nil
}

// GetMemberByReferenceNumber retrieves a member by reference number with all
// owned memberships eagerly loaded.
func (r *memberRepository) GetMemberByReferenceNumber(referenceNumber int64) (*models.Member, error) {
	member := &models.Member{}
	query := `SELECT ` + memberColumns + ` FROM members WHERE reference_number = $1`

	err := scanMember(r.db.QueryRow(query, referenceNumber), member)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by reference number %d: %v", ErrDatabaseError, referenceNumber, err)
	}

	memberships, err := r.getMembershipsForMember(member.ID)
	if err != nil {
		return nil, err
	}
	member.Memberships = memberships
	return member, nil
}

func (r *memberRepository) getMembershipsForMember(memberID int64) ([]models.Membership, error) {
	memberships := []models.Membership{}
	query := `SELECT id, member_id, year, amount, is_paid, discounted
	          FROM memberships WHERE member_id = $1 ORDER BY id`

	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying memberships for member %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.MemberID, &m.Year, &m.Amount, &m.IsPaid, &m.Discounted); err != nil {
			return nil, fmt.Errorf("%w: scanning membership: %v", ErrDatabaseError, err)
		}
		memberships = append(memberships, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating membership rows: %v", ErrDatabaseError, err)
	}
	return memberships, nil
}

// GetMembers retrieves a paginated list of members with an optional
// case-insensitive search over name, city and email.
func (r *memberRepository) GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) {
	members := []models.Member{}
	totalCount := 0

	query := `SELECT ` + memberColumns + `, COUNT(*) OVER() AS total_count FROM members`
	var args []interface{}
	argCount := 1

	if searchTerm != nil && *searchTerm != "" {
		query += fmt.Sprintf(" WHERE full_name ILIKE $%d OR city ILIKE $%d OR email ILIKE $%d", argCount, argCount, argCount)
		args = append(args, "%"+*searchTerm+"%")
		argCount++
	}

	query += " ORDER BY last_name, first_name"
	if pageSize > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argCount)
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var member models.Member
		if err := rows.Scan(
			&member.ID, &member.FirstName, &member.LastName, &member.FullName, &member.City,
			&member.StreetAddress, &member.PostalCode, &member.Phone, &member.Email,
			&member.Notes, &member.NoPostalMail, &member.ReferenceNumber,
			&member.CreatedAt, &member.ModifiedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning member: %v", ErrDatabaseError, err)
		}
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating member rows: %v", ErrDatabaseError, err)
	}
	return members, totalCount, nil
}

// UpdateMember updates an existing member. full_name is recomputed by the
// generated column whenever either name field changes; modified_at is bumped
// database-side.
func (r *memberRepository) UpdateMember(executor SQLExecutor, member *models.Member) error {
	query := `UPDATE members SET
	            first_name = $1, last_name = $2, city = $3, street_address = $4,
	            postal_code = $5, phone = $6, email = $7, notes = $8,
	            no_postal_mail = $9, modified_at = CURRENT_DATE
	          WHERE id = $10`

	result, err := executor.Exec(query,
		member.FirstName, member.LastName, member.City, member.StreetAddress,
		member.PostalCode, member.Phone, member.Email, member.Notes,
		member.NoPostalMail, member.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMember removes a member. Owned memberships go with it via the
// ON DELETE CASCADE constraint.
func (r *memberRepository) DeleteMember(executor SQLExecutor, id int64) error {
	query := `DELETE FROM members WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *memberRepository) searchMembers(condition string, arg interface{}) ([]models.Member, error) {
	members := []models.Member{}
	query := `SELECT ` + memberColumns + ` FROM members WHERE ` + condition + ` ORDER BY id`

	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("%w: searching members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var member models.Member
		if err := scanMember(rows, &member); err != nil {
			return nil, fmt.Errorf("%w: scanning member: %v", ErrDatabaseError, err)
		}
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating member rows: %v", ErrDatabaseError, err)
	}
	return members, nil
}

// SearchByFullName matches the computed full name case-insensitively.
func (r *memberRepository) SearchByFullName(needle string) ([]models.Member, error) {
	return r.searchMembers("full_name ILIKE $1", "%"+needle+"%")
}

// SearchByFirstOrLastName matches either name field case-insensitively.
func (r *memberRepository) SearchByFirstOrLastName(needle string) ([]models.Member, error) {
	return r.searchMembers("(first_name ILIKE $1 OR last_name ILIKE $1)", "%"+needle+"%")
}

// SearchByCity matches the city case-insensitively.
func (r *memberRepository) SearchByCity(needle string) ([]models.Member, error) {
	return r.searchMembers("city ILIKE $1", "%"+needle+"%")
}

// SearchByPostalCode is an exact match.
func (r *memberRepository) SearchByPostalCode(postalCode string) ([]models.Member, error) {
	return r.searchMembers("postal_code = $1", postalCode)
}
