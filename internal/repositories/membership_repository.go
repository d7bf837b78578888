package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"membermgr_backend/internal/models"

	"github.com/lib/pq"
)

// MembershipRepository defines the interface for membership-related database operations.
type MembershipRepository interface {
	CreateMembership(executor SQLExecutor, membership *models.Membership) (int64, error)
	GetMembershipByID(id int64) (*models.Membership, error)
	GetMembershipsByMemberID(memberID int64) ([]models.Membership, error)
}

type membershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new instance of MembershipRepository.
func NewMembershipRepository(db *sql.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// CreateMembership inserts a new membership row. Payment flags must already
// be derived on the model; they are persisted as given.
func (r *membershipRepository) CreateMembership(executor SQLExecutor, membership *models.Membership) (int64, error) {
	query := `INSERT INTO memberships (member_id, year, amount, is_paid, discounted)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	err := executor.QueryRow(query,
		membership.MemberID, membership.Year, membership.Amount,
		membership.IsPaid, membership.Discounted,
	).Scan(&membership.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "foreign_key_violation" {
				return 0, fmt.Errorf("%w: member %d does not exist", ErrNotFound, membership.MemberID)
			}
		}
		return 0, fmt.Errorf("%w: creating membership: %v", ErrDatabaseError, err)
	}
	return membership.ID, nil
}

// GetMembershipByID retrieves a single membership.
func (r *membershipRepository) GetMembershipByID(id int64) (*models.Membership, error) {
	membership := &models.Membership{}
	query := `SELECT id, member_id, year, amount, is_paid, discounted
	          FROM memberships WHERE id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&membership.ID, &membership.MemberID, &membership.Year,
		&membership.Amount, &membership.IsPaid, &membership.Discounted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting membership by ID %d: %v", ErrDatabaseError, id, err)
	}
	return membership, nil
}

// GetMembershipsByMemberID retrieves all memberships owned by a member in
// insertion order.
func (r *membershipRepository) GetMembershipsByMemberID(memberID int64) ([]models.Membership, error) {
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
