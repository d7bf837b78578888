package repositories

import (
	"regexp"
	"testing"

	"membermgr_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMembership_PersistsDerivedFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMembershipRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO memberships")).
		WithArgs(int64(7), 2026, 10, true, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	membership := &models.Membership{MemberID: 7, Year: 2026}
	membership.ApplyAmount(models.MembershipPricing{StandardFee: 25, UnpaidThreshold: 0}, 10)

	id, err := repo.CreateMembership(db, membership)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, int64(3), membership.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMembership_MissingMemberMapsToNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMembershipRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO memberships")).
		WillReturnError(&pq.Error{Code: "23503", Message: "insert violates foreign key constraint"})

	membership := &models.Membership{MemberID: 999, Year: 2026}
	_, err = repo.CreateMembership(db, membership)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMembershipByID_NotFoundAfterCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMembershipRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM memberships WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "year", "amount", "is_paid", "discounted"}))

	_, err = repo.GetMembershipByID(3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMembershipsByMemberID_InsertionOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMembershipRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM memberships WHERE member_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "year", "amount", "is_paid", "discounted"}).
			AddRow(int64(1), int64(7), 2026, 0, false, false).
			AddRow(int64(2), int64(7), 2024, 25, true, false))

	memberships, err := repo.GetMembershipsByMemberID(7)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	// Ordered by insertion, not by year.
	assert.Equal(t, 2026, memberships[0].Year)
	assert.Equal(t, 2024, memberships[1].Year)
}
