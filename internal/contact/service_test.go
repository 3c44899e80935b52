package contact

import (
	"context"
	"io"
	"testing"

	"github.com/angelmondragon/talentconnect-backend/internal/notifications"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/dbtest"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    Service
	client *db.Client
	sent   []notifications.Message
}

func (f *fixture) Notify(_ context.Context, msg notifications.Message) {
	f.sent = append(f.sent, msg)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{client: dbtest.Client(t)}
	var err error
	f.svc, err = NewService(ServiceParams{
		DB:       f.client,
		Notifier: f,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) listing(t *testing.T, active bool) *models.Equipment {
	t.Helper()
	owner := dbtest.CreateUser(t, f.client.DB(), models.User{FirstName: "Omar", IsEquipmentOwner: true, RolesSelected: true})
	item := &models.Equipment{
		UserID:        owner.ID,
		Name:          "Liebherr LTM 1100",
		Type:          "Mobile Crane",
		Location:      "Dammam",
		ContactPerson: "Omar Haddad",
		ContactNumber: "+966500000001",
		ContactEmail:  "rentals@haddad.example",
	}
	require.NoError(t, f.client.DB().Create(item).Error)
	if !active {
		require.NoError(t, f.client.DB().Model(item).Update("is_active", false).Error)
	}
	return item
}

func TestEquipmentInquiry(t *testing.T) {
	f := newFixture(t)
	item := f.listing(t, true)

	res, err := f.svc.EquipmentInquiry(context.Background(), EquipmentInquiryRequest{
		EquipmentID: item.ID,
		Name:        " Priya ",
		Email:       "priya@example.com",
		Message:     "Need it for two weeks in March.",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.InquiryStatusPending, res.Inquiry.Status)
	assert.Equal(t, "Priya", res.Inquiry.RequesterName)
	assert.Equal(t, item.Name, res.Inquiry.EquipmentName)

	var stored models.ContactInquiry
	require.NoError(t, f.client.DB().First(&stored, "id = ?", res.Inquiry.ID).Error)
	assert.Equal(t, item.ID, stored.EquipmentID)

	require.Len(t, f.sent, 1)
	msg := f.sent[0]
	assert.Equal(t, notifications.KindRentalInquiry, msg.Kind)
	assert.Equal(t, "rentals@haddad.example", msg.To)
	assert.Equal(t, "priya@example.com", msg.ReplyTo)
	assert.Equal(t, "Rental Inquiry: Liebherr LTM 1100 - from Priya", msg.Subject)
}

func TestEquipmentInquiryRejectsHiddenOrMissingListings(t *testing.T) {
	f := newFixture(t)
	hidden := f.listing(t, false)

	for _, id := range []uuid.UUID{hidden.ID, uuid.New()} {
		_, err := f.svc.EquipmentInquiry(context.Background(), EquipmentInquiryRequest{
			EquipmentID: id,
			Name:        "Priya",
			Email:       "priya@example.com",
			Message:     "Is this available?",
		})
		require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	}
	assert.Empty(t, f.sent)
}

func TestEquipmentInquiryValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.EquipmentInquiry(context.Background(), EquipmentInquiryRequest{Email: "not-an-email"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details, ok := pkgerrors.As(err).Details().(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "equipmentId")
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "message")
	assert.Equal(t, "must be a valid email", details["email"])
}

func TestContactFreelancer(t *testing.T) {
	f := newFixture(t)
	user := dbtest.CreateUser(t, f.client.DB(), models.User{FirstName: "Ravi", Email: "ravi@example.com", IsFreelancer: true, RolesSelected: true})
	require.NoError(t, f.client.DB().Create(&models.JobSeeker{UserID: user.ID, Title: "Rigger"}).Error)

	req := FreelancerContactRequest{
		FreelancerID: user.ID,
		SenderInfo:   SenderInfo{Name: "Lena", Email: "lena@builders.example", Company: "Builders"},
		Subject:      "Site rigging role",
		Message:      "We would like to talk about a six month contract.",
	}
	res, err := f.svc.ContactFreelancer(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.FreelancerID)

	require.Len(t, f.sent, 1)
	msg := f.sent[0]
	assert.Equal(t, notifications.KindCandidateContact, msg.Kind)
	assert.Equal(t, "ravi@example.com", msg.To)
	assert.Equal(t, "Site rigging role", msg.Subject)
	assert.Equal(t, "lena@builders.example", msg.ReplyTo)
	data := msg.Data.(notifications.CandidateContactData)
	assert.Equal(t, "Ravi", data.CandidateName)
	assert.Equal(t, "Builders", data.SenderCompany)

	req.FreelancerID = uuid.New()
	_, err = f.svc.ContactFreelancer(context.Background(), req)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, freelancerNotFound, pkgerrors.As(err).Message())
}
