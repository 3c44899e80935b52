package search

import (
	"context"
	"testing"

	"github.com/angelmondragon/talentconnect-backend/internal/locations"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/dbtest"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	got := Categorize([]TitleBio{
		{Title: "React Engineer"},
		{Title: "Frontend dev", Bio: "vue and css"},
		{Title: "Crane Operator", Bio: "Tower cranes"},
		{Title: "Welder"},
		{Title: "Python backend"},
	})
	require.Equal(t, []Category{
		{Name: "Frontend Developer", Count: 2, Icon: "Code"},
		{Name: "Backend Developer", Count: 1, Icon: "Database"},
		{Name: "Others", Count: 2, Icon: "User"},
	}, got)
}

func TestCategorizeFirstRuleWins(t *testing.T) {
	got := Categorize([]TitleBio{{Title: "Data scientist", Bio: "python"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Backend Developer", got[0].Name)
}

func TestRankByRelevanceIsStable(t *testing.T) {
	candidates := []CandidateDTO{
		{FirstName: "bio-only", Bio: "experienced welder"},
		{FirstName: "none", Title: "Rigger"},
		{FirstName: "title-only", Title: "Welder"},
		{FirstName: "both", Title: "Senior Welder", Bio: "welder for ten years"},
		{FirstName: "title-only-2", Title: "Pipe welder"},
	}
	RankByRelevance(candidates, "WELDER")

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.FirstName)
	}
	assert.Equal(t, []string{"both", "title-only", "title-only-2", "bio-only", "none"}, names)
	assert.Equal(t, 5, candidates[0].RelevanceScore)
	assert.Equal(t, 0, candidates[4].RelevanceScore)
}

type searchFixture struct {
	svc    Service
	client *db.Client
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()
	nodes, err := locations.DefaultSeed()
	require.NoError(t, err)
	client := dbtest.Client(t)
	svc, err := NewService(ServiceParams{DB: client, Locations: locations.FromSeed(nodes)})
	require.NoError(t, err)
	return &searchFixture{svc: svc, client: client}
}

func (f *searchFixture) freelancer(t *testing.T, name, location string, profile models.JobSeeker) *models.User {
	t.Helper()
	user := dbtest.CreateUser(t, f.client.DB(), models.User{FirstName: name, Location: location, IsFreelancer: true, RolesSelected: true})
	profile.UserID = user.ID
	require.NoError(t, f.client.DB().Create(&profile).Error)
	return user
}

func TestSearchJobSeekers(t *testing.T) {
	f := newSearchFixture(t)
	f.freelancer(t, "Bio", "Chennai", models.JobSeeker{Title: "Rigger", Bio: "certified crane operator"})
	f.freelancer(t, "Title", "Bengaluru", models.JobSeeker{Title: "Crane Operator", Experience: "5-10"})
	f.freelancer(t, "Mumbai", "Mumbai", models.JobSeeker{Title: "Crane Operator", Experience: "1-3"})
	f.freelancer(t, "Dubai", "Dubai", models.JobSeeker{Title: "Welder"})
	dbtest.CreateUser(t, f.client.DB(), models.User{FirstName: "NoProfile", IsFreelancer: true})

	res, err := f.svc.SearchJobSeekers(context.Background(), JobSeekersRequest{JobTitle: "crane operator", Location: "india"})
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	assert.Equal(t, "Bio", res.Candidates[2].FirstName)
	assert.Equal(t, 2, res.Candidates[2].RelevanceScore)
	assert.Equal(t, 3, res.Candidates[0].RelevanceScore)

	res, err = f.svc.SearchJobSeekers(context.Background(), JobSeekersRequest{Location: "Bangalore"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Title", res.Candidates[0].FirstName)

	res, err = f.svc.SearchJobSeekers(context.Background(), JobSeekersRequest{Experience: "1-3"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Mumbai", res.Candidates[0].FirstName)

	res, err = f.svc.SearchJobSeekers(context.Background(), JobSeekersRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)

	_, err = f.svc.SearchJobSeekers(context.Background(), JobSeekersRequest{Availability: "sometimes"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCandidateAndStats(t *testing.T) {
	f := newSearchFixture(t)
	cv := "https://cdn/cv.pdf"
	withCV := f.freelancer(t, "Ana", "Riyadh", models.JobSeeker{Title: "Surveyor", CVFilePath: &cv, Certificates: []string{"https://cdn/c1.pdf"}})
	f.freelancer(t, "Ben", "Jeddah", models.JobSeeker{Title: "Welder", Availability: enums.ProfileAvailabilityBusy})

	got, err := f.svc.Candidate(context.Background(), withCV.ID)
	require.NoError(t, err)
	assert.Equal(t, "Surveyor", got.Title)
	assert.Equal(t, []string{"https://cdn/c1.pdf"}, got.Certificates)
	assert.Equal(t, cv, *got.CVFilePath)

	_, err = f.svc.Candidate(context.Background(), uuid.New())
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, candidateNotFound, pkgerrors.As(err).Message())

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalCandidates)
	assert.Equal(t, int64(1), stats.CandidatesWithCV)

	featured, err := f.svc.FeaturedFreelancers(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Ana", featured[0].FirstName)

	cats, err := f.svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cats.TotalProfessionals)

	list, err := f.svc.ListFreelancers(context.Background(), FreelancerListQuery{Search: "weld"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Ben", list.Freelancers[0].FirstName)
}
