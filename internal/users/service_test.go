package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/config"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/dbtest"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/pagination"
	"github.com/angelmondragon/talentconnect-backend/pkg/security"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := dbtest.Client(t)
	svc, err := NewService(ServiceParams{DB: client, PasswordConfig: config.PasswordConfig{BcryptCost: 4}})
	require.NoError(t, err)
	return svc, client
}

func userType(v enums.UserType) *enums.UserType { return &v }

func TestListAndStats(t *testing.T) {
	svc, client := newTestService(t)
	conn := client.DB()
	dbtest.CreateUser(t, conn, models.User{FirstName: "Ana", IsFreelancer: true, RolesSelected: true, UserType: userType(enums.UserTypeJobSeeker)})
	dbtest.CreateUser(t, conn, models.User{FirstName: "Ben", IsFreelancer: true, IsEquipmentOwner: true, RolesSelected: true, UserType: userType(enums.UserTypeEquipmentOwner)})
	dbtest.CreateUser(t, conn, models.User{FirstName: "Cy"})

	list, err := svc.List(context.Background(), pagination.Params{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalFreelancers)
	assert.Equal(t, int64(1), stats.TotalEquipmentOwners)
	assert.Equal(t, int64(1), stats.BothRoles)
	assert.Equal(t, int64(1), stats.PendingRoleSelection)
}

func TestSearchRequiresTwoCharacters(t *testing.T) {
	svc, client := newTestService(t)
	dbtest.CreateUser(t, client.DB(), models.User{FirstName: "Priya", UserName: "priya_dev", UserType: userType(enums.UserTypeJobSeeker)})
	dbtest.CreateUser(t, client.DB(), models.User{FirstName: "Pritam", UserType: userType(enums.UserTypeEquipmentOwner)})

	_, err := svc.Search(context.Background(), " p ", "")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	res, err := svc.Search(context.Background(), "PRI", "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	res, err = svc.Search(context.Background(), "pri", "jobseeker")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "priya_dev", res.Users[0].UserName)
}

func TestListByTypeRejectsUnknown(t *testing.T) {
	svc, client := newTestService(t)
	dbtest.CreateUser(t, client.DB(), models.User{UserType: userType(enums.UserTypeEquipmentOwner), IsEquipmentOwner: true})

	_, err := svc.ListByType(context.Background(), "recruiter")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	res, err := svc.ListByType(context.Background(), "equipment_owner")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.True(t, res.Users[0].IsEquipmentOwner)
}

func TestUpdateSelfOnly(t *testing.T) {
	svc, client := newTestService(t)
	alice := dbtest.CreateUser(t, client.DB(), models.User{FirstName: "Alice"})
	bob := dbtest.CreateUser(t, client.DB(), models.User{FirstName: "Bob"})

	name := "Alicia"
	_, err := svc.Update(context.Background(), bob.ID, alice.ID, UpdateRequest{FirstName: &name})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	blank := "   "
	_, err = svc.Update(context.Background(), alice.ID, alice.ID, UpdateRequest{FirstName: &blank})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	password := "newsecret"
	updated, err := svc.Update(context.Background(), alice.ID, alice.ID, UpdateRequest{FirstName: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)

	stored, err := NewRepository(client.DB()).FindByID(context.Background(), alice.ID)
	require.NoError(t, err)
	ok, err := security.VerifyPassword("newsecret", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteCascadesDependents(t *testing.T) {
	svc, client := newTestService(t)
	conn := client.DB()
	owner := dbtest.CreateUser(t, conn, models.User{IsEquipmentOwner: true, IsFreelancer: true, RolesSelected: true})
	require.NoError(t, conn.Create(&models.JobSeeker{UserID: owner.ID}).Error)
	require.NoError(t, conn.Create(&models.EquipmentOwner{UserID: owner.ID}).Error)
	equipment := models.Equipment{UserID: owner.ID, Name: "Crane", Type: "Heavy", ContactPerson: "Bo", ContactNumber: "12345678", ContactEmail: "bo@x.com"}
	require.NoError(t, conn.Create(&equipment).Error)
	require.NoError(t, conn.Create(&models.ContactInquiry{EquipmentID: equipment.ID, RequesterName: "R", RequesterEmail: "r@x.com", Message: "hi"}).Error)

	other := dbtest.CreateUser(t, conn, models.User{})
	require.True(t, pkgerrors.IsCode(svc.Delete(context.Background(), other.ID, owner.ID), pkgerrors.CodeForbidden))

	require.NoError(t, svc.Delete(context.Background(), owner.ID, owner.ID))

	for _, model := range []any{&models.JobSeeker{}, &models.EquipmentOwner{}, &models.Equipment{}, &models.ContactInquiry{}} {
		var total int64
		require.NoError(t, conn.Model(model).Count(&total).Error)
		assert.Zero(t, total)
	}

	err := svc.Delete(context.Background(), owner.ID, owner.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestFindConflictIsCaseInsensitive(t *testing.T) {
	_, client := newTestService(t)
	repo := NewRepository(client.DB())
	a := dbtest.CreateUser(t, client.DB(), models.User{UserName: "alice1", Email: "a@x.com"})
	b := dbtest.CreateUser(t, client.DB(), models.User{UserName: "bob", Email: "b@x.com"})

	field, err := repo.FindConflict(context.Background(), b.ID, "A@X.COM", "")
	require.NoError(t, err)
	assert.Equal(t, "email", field)

	field, err = repo.FindConflict(context.Background(), b.ID, "", "ALICE1")
	require.NoError(t, err)
	assert.Equal(t, "userName", field)

	field, err = repo.FindConflict(context.Background(), a.ID, "a@x.com", "alice1")
	require.NoError(t, err)
	assert.Empty(t, field)
}

func TestUniqueViolationField(t *testing.T) {
	assert.Equal(t, "email", UniqueViolationField(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email_lower"}))
	assert.Equal(t, "userName", UniqueViolationField(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_user_name_lower"}))
	assert.Empty(t, UniqueViolationField(&pgconn.PgError{Code: "23505", ConstraintName: "idx_job_seekers_user_id"}))
	assert.Empty(t, UniqueViolationField(errors.New("connection reset")))

	_, client := newTestService(t)
	repo := NewRepository(client.DB())
	dbtest.CreateUser(t, client.DB(), models.User{UserName: "alice1", Email: "a@x.com"})

	_, err := repo.Create(context.Background(), CreateUserDTO{UserName: "other", Email: "a@x.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.Equal(t, "email", UniqueViolationField(err))

	_, err = repo.Create(context.Background(), CreateUserDTO{UserName: "alice1", Email: "new@x.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.Equal(t, "userName", UniqueViolationField(err))
}

func TestResetTokenIsSingleUse(t *testing.T) {
	_, client := newTestService(t)
	repo := NewRepository(client.DB())
	u := dbtest.CreateUser(t, client.DB(), models.User{})
	now := time.Now().UTC()

	require.NoError(t, repo.SetResetToken(context.Background(), u.ID, "123456", now.Add(time.Hour)))

	ok, err := repo.ConsumeResetToken(context.Background(), u.ID, "654321", now, "h1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ConsumeResetToken(context.Background(), u.ID, "123456", now, "h2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ConsumeResetToken(context.Background(), u.ID, "123456", now, "h3")
	require.NoError(t, err)
	assert.False(t, ok)
}
