package owners

import (
	"context"
	"testing"

	"github.com/angelmondragon/talentconnect-backend/pkg/db/dbtest"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerProfile(t *testing.T) {
	client := dbtest.Client(t)
	svc, err := NewService(ServiceParams{DB: client})
	require.NoError(t, err)

	owner := dbtest.CreateUser(t, client.DB(), models.User{FirstName: "Omar", IsEquipmentOwner: true, RolesSelected: true})
	inactive := &models.Equipment{UserID: owner.ID, Name: "Old Crane", Type: "Crane", ContactPerson: "Omar", ContactNumber: "12345678", ContactEmail: owner.Email}
	require.NoError(t, client.DB().Create(inactive).Error)
	require.NoError(t, client.DB().Model(inactive).Update("is_active", false).Error)

	got, err := svc.GetProfile(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Profile)
	require.Len(t, got.Equipment, 1)
	assert.False(t, got.Equipment[0].IsActive)

	company := "Haddad Heavy Lift"
	phone := " +966500000001 "
	updated, err := svc.UpdateProfile(context.Background(), owner.ID, UpdateProfileRequest{CompanyName: &company, Phone: &phone})
	require.NoError(t, err)
	require.NotNil(t, updated.Profile)
	assert.Equal(t, company, updated.Profile.CompanyName)
	assert.Equal(t, "+966500000001", updated.User.Phone)

	license := "CR-1010"
	again, err := svc.UpdateProfile(context.Background(), owner.ID, UpdateProfileRequest{BusinessLicense: &license})
	require.NoError(t, err)
	assert.Equal(t, company, again.Profile.CompanyName)
	assert.Equal(t, license, again.Profile.BusinessLicense)

	var count int64
	require.NoError(t, client.DB().Model(&models.EquipmentOwner{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
