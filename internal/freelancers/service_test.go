package freelancers

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/angelmondragon/talentconnect-backend/internal/media"
	"github.com/angelmondragon/talentconnect-backend/internal/notifications"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/dbtest"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/talentconnect-backend/pkg/db/types"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/angelmondragon/talentconnect-backend/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cdnBase = "https://cdn.example.com/bucket"

type fakeStore struct {
	deleted   []string
	deleteErr error
	onDelete  func(key string)
}

func (f *fakeStore) Upload(context.Context, storage.UploadInput) (*storage.Object, error) {
	return nil, errors.New("not used")
}

func (f *fakeStore) Delete(_ context.Context, ref string) error {
	if f.onDelete != nil {
		f.onDelete(ref)
	}
	f.deleted = append(f.deleted, ref)
	return f.deleteErr
}

func (f *fakeStore) ObjectKey(ref string) string {
	return storage.KeyFromRef(ref, cdnBase)
}

func certificateURL(userID uuid.UUID, name string) string {
	return cdnBase + "/" + media.OwnedPrefix(enums.MediaFolderCertificates, userID) + name
}

func (f *fakeStore) Ping(context.Context) error { return nil }

type kindRecorder struct {
	kinds []notifications.Kind
}

func (k *kindRecorder) Notify(_ context.Context, msg notifications.Message) {
	k.kinds = append(k.kinds, msg.Kind)
}

func newTestService(t *testing.T, store storage.Store) (Service, *db.Client, *kindRecorder) {
	t.Helper()
	client := dbtest.Client(t)
	rec := &kindRecorder{}
	svc, err := NewService(ServiceParams{
		DB:       client,
		Media:    store,
		Notifier: rec,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc, client, rec
}

func ptr[T any](v T) *T { return &v }

func TestUpdateProfileCreatesLazily(t *testing.T) {
	svc, client, rec := newTestService(t, &fakeStore{})
	user := dbtest.CreateUser(t, client.DB(), models.User{FirstName: "Asha", IsFreelancer: true, RolesSelected: true})

	got, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Profile)

	salary := decimal.RequireFromString("4500.50")
	resp, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		Title:          ptr("Site Engineer"),
		Experience:     ptr("5-10 years"),
		ExpectedSalary: &salary,
		SalaryCurrency: ptr("sar"),
		Availability:   ptr("busy"),
		AvailableFrom:  ptr("2025-06-01"),
		CVFilePath:     ptr("https://cdn.example.com/cv.pdf"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Site Engineer", resp.Profile.Title)
	assert.Equal(t, "SAR", resp.Profile.SalaryCurrency)
	assert.Equal(t, "busy", string(resp.Profile.Availability))
	assert.Equal(t, "2025-06-01", *resp.Profile.AvailableFrom)
	assert.True(t, salary.Equal(*resp.Profile.ExpectedSalary))
	assert.Equal(t, []notifications.Kind{notifications.KindProfileCompleted}, rec.kinds)

	_, err = svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{Bio: ptr("Ten years on rigs")})
	require.NoError(t, err)
	assert.Equal(t, notifications.KindProfileUpdated, rec.kinds[1])

	got, err = svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site Engineer", got.Profile.Title)
	assert.Equal(t, "Ten years on rigs", got.Profile.Bio)
	assert.Equal(t, "https://cdn.example.com/cv.pdf", *got.Profile.CVFilePath)
}

func TestUpdateProfileCertificates(t *testing.T) {
	svc, client, _ := newTestService(t, &fakeStore{})
	user := dbtest.CreateUser(t, client.DB(), models.User{IsFreelancer: true, RolesSelected: true})
	require.NoError(t, client.DB().Create(&models.JobSeeker{UserID: user.ID, Certificates: []string{"https://c/old.pdf", "https://c/a.pdf", "https://c/b.pdf"}}).Error)

	declared := []string{"https://c/b.pdf", "https://c/a.pdf"}
	resp, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		ExistingCertificates: declared,
		NewCertificates:      []string{"https://c/new.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://c/b.pdf", "https://c/a.pdf", "https://c/new.pdf"}, resp.Profile.Certificates)

	again, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{ExistingCertificates: resp.Profile.Certificates})
	require.NoError(t, err)
	assert.Equal(t, resp.Profile.Certificates, again.Profile.Certificates)

	kept, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Len(t, kept.Profile.Certificates, 3)

	wiped, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{ReplaceCertificates: true})
	require.NoError(t, err)
	assert.Empty(t, wiped.Profile.Certificates)

	_, err = svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		NewCertificates: []string{"1", "2", "3", "4", "5", "6"},
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateProfileConflictLeavesUserUnchanged(t *testing.T) {
	svc, client, rec := newTestService(t, &fakeStore{})
	a := dbtest.CreateUser(t, client.DB(), models.User{Email: "a@x.com", FirstName: "A", IsFreelancer: true})
	dbtest.CreateUser(t, client.DB(), models.User{Email: "b@x.com", UserName: "bee"})

	_, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileRequest{
		FirstName: ptr("Changed"),
		Email:     ptr("B@X.com"),
		Title:     ptr("Welder"),
	})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
	assert.Equal(t, map[string]any{"field": "email"}, pkgerrors.As(err).Details())

	_, err = svc.UpdateProfile(context.Background(), a.ID, UpdateProfileRequest{UserName: ptr("BEE")})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	var stored models.User
	require.NoError(t, client.DB().First(&stored, "id = ?", a.ID).Error)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Equal(t, "A", stored.FirstName)

	var profiles int64
	require.NoError(t, client.DB().Model(&models.JobSeeker{}).Count(&profiles).Error)
	assert.Zero(t, profiles)
	assert.Empty(t, rec.kinds)
}

func TestUpdateProfileAllowsOwnEmail(t *testing.T) {
	svc, client, _ := newTestService(t, &fakeStore{})
	a := dbtest.CreateUser(t, client.DB(), models.User{Email: "a@x.com", UserName: "alpha"})

	resp, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileRequest{Email: ptr("A@X.COM"), UserName: ptr("alpha")})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", resp.User.Email)
}

func TestDeleteCertificate(t *testing.T) {
	store := &fakeStore{}
	svc, client, _ := newTestService(t, store)
	user := dbtest.CreateUser(t, client.DB(), models.User{IsFreelancer: true})
	first := certificateURL(user.ID, "a.pdf")
	second := certificateURL(user.ID, "b.pdf")

	_, err := svc.DeleteCertificate(context.Background(), user.ID, first)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, profileNotFound, pkgerrors.As(err).Message())

	require.NoError(t, client.DB().Create(&models.JobSeeker{UserID: user.ID, Certificates: []string{first, second}}).Error)

	_, err = svc.DeleteCertificate(context.Background(), user.ID, "  ")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.DeleteCertificate(context.Background(), user.ID, certificateURL(user.ID, "zzz.pdf"))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, certificateNotFound, pkgerrors.As(err).Message())

	res, err := svc.DeleteCertificate(context.Background(), user.ID, first)
	require.NoError(t, err)
	assert.Equal(t, []string{second}, res.Certificates)
	assert.Equal(t, []string{media.OwnedPrefix(enums.MediaFolderCertificates, user.ID) + "a.pdf"}, store.deleted)

	store.deleteErr = errors.New("bucket unavailable")
	res, err = svc.DeleteCertificate(context.Background(), user.ID, second)
	require.NoError(t, err)
	assert.Empty(t, res.Certificates)
	assert.Contains(t, res.Message, "storage deletion failed")

	got, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Profile.Certificates)
}

func TestDeleteCertificatePersistsBeforeStorageDelete(t *testing.T) {
	store := &fakeStore{}
	svc, client, _ := newTestService(t, store)
	user := dbtest.CreateUser(t, client.DB(), models.User{IsFreelancer: true})
	ref := certificateURL(user.ID, "a.pdf")
	require.NoError(t, client.DB().Create(&models.JobSeeker{UserID: user.ID, Certificates: []string{ref}}).Error)

	var atDelete []string
	store.onDelete = func(string) {
		var profile models.JobSeeker
		require.NoError(t, client.DB().First(&profile, "user_id = ?", user.ID).Error)
		atDelete = append([]string{}, profile.Certificates...)
	}

	_, err := svc.DeleteCertificate(context.Background(), user.ID, ref)
	require.NoError(t, err)
	require.Len(t, store.deleted, 1)
	assert.Empty(t, atDelete)
}

func TestCertificatesOfOtherUsersSurviveDeletion(t *testing.T) {
	store := &fakeStore{}
	svc, client, _ := newTestService(t, store)
	victim := dbtest.CreateUser(t, client.DB(), models.User{IsFreelancer: true})
	attacker := dbtest.CreateUser(t, client.DB(), models.User{IsFreelancer: true})
	victimRef := certificateURL(victim.ID, "license.pdf")
	require.NoError(t, client.DB().Create(&models.JobSeeker{UserID: victim.ID, Certificates: []string{victimRef}}).Error)

	resp, err := svc.UpdateProfile(context.Background(), attacker.ID, UpdateProfileRequest{
		Title:                ptr("Rigger"),
		ExistingCertificates: []string{victimRef, "talentconnect/equipment/" + victim.ID.String() + "/crane.png"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Profile.Certificates)

	// A ref pointing at another user's upload area is dropped without touching storage.
	require.NoError(t, client.DB().Model(&models.JobSeeker{}).Where("user_id = ?", attacker.ID).
		Update("certificates", dbtypes.StringList{victimRef, "https://elsewhere.example.com/x.pdf"}).Error)

	res, err := svc.DeleteCertificate(context.Background(), attacker.ID, victimRef)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://elsewhere.example.com/x.pdf"}, res.Certificates)

	_, err = svc.DeleteCertificate(context.Background(), attacker.ID, "https://elsewhere.example.com/x.pdf")
	require.NoError(t, err)
	assert.Empty(t, store.deleted)

	got, err := svc.GetProfile(context.Background(), victim.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{victimRef}, got.Profile.Certificates)
}

func TestUpdateProfileRollsBackAccountChanges(t *testing.T) {
	svc, client, rec := newTestService(t, &fakeStore{})
	user := dbtest.CreateUser(t, client.DB(), models.User{Email: "a@x.com", FirstName: "A", IsFreelancer: true})
	require.NoError(t, client.DB().Migrator().DropTable(&models.JobSeeker{}))

	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		FirstName: ptr("Changed"),
		Email:     ptr("new@x.com"),
		Title:     ptr("Welder"),
	})
	require.Error(t, err)

	var stored models.User
	require.NoError(t, client.DB().First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Equal(t, "A", stored.FirstName)
	assert.Empty(t, rec.kinds)
}

func TestUpdateProfileRejectsOversizedSalary(t *testing.T) {
	svc, client, _ := newTestService(t, &fakeStore{})
	user := dbtest.CreateUser(t, client.DB(), models.User{IsFreelancer: true})

	tooLarge := decimal.RequireFromString("10000000000")
	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{ExpectedSalary: &tooLarge})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, map[string]string{"expectedSalary": "must be <= 9999999999.99"}, pkgerrors.As(err).Details())

	roundsOver := decimal.RequireFromString("9999999999.999")
	_, err = svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{ExpectedSalary: &roundsOver})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	largest := MaxExpectedSalary
	resp, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{ExpectedSalary: &largest})
	require.NoError(t, err)
	require.NotNil(t, resp.Profile.ExpectedSalary)
}
