package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/talentconnect-backend/internal/locations"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/pagination"
	"github.com/google/uuid"
)

const (
	candidateNotFound  = "candidate not found"
	freelancerNotFound = "freelancer not found"

	searchDefaultLimit   = 50
	listDefaultLimit     = 20
	featuredDefaultLimit = 3
	dateLayout           = "2006-01-02"
)

// Service answers recruiter searches and the public freelancer directory.
type Service interface {
	SearchJobSeekers(ctx context.Context, req JobSeekersRequest) (*SearchResult, error)
	Candidate(ctx context.Context, id uuid.UUID) (*CandidateDTO, error)
	Stats(ctx context.Context) (*Stats, error)
	Categories(ctx context.Context) (*CategoriesResult, error)

	FeaturedFreelancers(ctx context.Context, limit int) ([]FeaturedFreelancer, error)
	Freelancer(ctx context.Context, id uuid.UUID) (*CandidateDTO, error)
	ListFreelancers(ctx context.Context, q FreelancerListQuery) (*FreelancerListResult, error)
}

type ServiceParams struct {
	DB        *db.Client
	Locations *locations.Hierarchy
}

type service struct {
	repo      *Repository
	locations *locations.Hierarchy
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	return &service{repo: NewRepository(params.DB.DB()), locations: params.Locations}, nil
}

func (s *service) SearchJobSeekers(ctx context.Context, req JobSeekersRequest) (*SearchResult, error) {
	term := strings.TrimSpace(req.JobTitle)
	f, err := s.filter(term, []string{"js.title", "js.bio"}, req.Location, req.Experience, req.Availability)
	if err != nil {
		return nil, err
	}

	page := pagination.Normalize(pagination.Params{Limit: req.Limit, Offset: req.Offset}, searchDefaultLimit)
	rows, err := s.repo.Find(ctx, f, page)
	if err != nil {
		return nil, db.MapError(err, candidateNotFound, "search job seekers")
	}
	candidates := fromRows(rows)
	if term != "" {
		RankByRelevance(candidates, term)
	}
	return &SearchResult{Candidates: candidates, Total: len(candidates), SearchCriteria: req}, nil
}

func (s *service) Candidate(ctx context.Context, id uuid.UUID) (*CandidateDTO, error) {
	return s.one(ctx, id, candidateNotFound)
}

func (s *service) Freelancer(ctx context.Context, id uuid.UUID) (*CandidateDTO, error) {
	return s.one(ctx, id, freelancerNotFound)
}

func (s *service) one(ctx context.Context, id uuid.UUID, notFound string) (*CandidateDTO, error) {
	row, err := s.repo.FindByUserID(ctx, id)
	if err != nil {
		return nil, db.MapError(err, notFound, "load freelancer")
	}
	dto := fromRow(row)
	return &dto, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, db.MapError(err, candidateNotFound, "search statistics")
	}
	return &stats, nil
}

func (s *service) Categories(ctx context.Context) (*CategoriesResult, error) {
	profiles, err := s.repo.TitledProfiles(ctx)
	if err != nil {
		return nil, db.MapError(err, candidateNotFound, "professional categories")
	}
	return &CategoriesResult{Categories: Categorize(profiles), TotalProfessionals: len(profiles)}, nil
}

func (s *service) FeaturedFreelancers(ctx context.Context, limit int) ([]FeaturedFreelancer, error) {
	if limit <= 0 {
		limit = featuredDefaultLimit
	}
	rows, err := s.repo.Featured(ctx, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, db.MapError(err, freelancerNotFound, "featured freelancers")
	}
	out := make([]FeaturedFreelancer, 0, len(rows))
	for _, row := range rows {
		out = append(out, FeaturedFreelancer{
			ID:           row.UserID,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			Location:     row.Location,
			Title:        row.Title,
			Experience:   row.Experience,
			Availability: row.Availability,
		})
	}
	return out, nil
}

func (s *service) ListFreelancers(ctx context.Context, q FreelancerListQuery) (*FreelancerListResult, error) {
	f, err := s.filter(strings.TrimSpace(q.Search), []string{"u.first_name", "u.last_name", "js.title"}, q.Location, q.Experience, q.Availability)
	if err != nil {
		return nil, err
	}
	page := pagination.Normalize(pagination.Params{Limit: q.Limit, Offset: q.Offset}, listDefaultLimit)
	rows, err := s.repo.Find(ctx, f, page)
	if err != nil {
		return nil, db.MapError(err, freelancerNotFound, "list freelancers")
	}
	list := fromRows(rows)
	return &FreelancerListResult{Freelancers: list, Count: len(list)}, nil
}

func (s *service) filter(text string, columns []string, location, experience, availability string) (Filter, error) {
	f := Filter{
		Text:        text,
		TextColumns: columns,
		Experience:  strings.TrimSpace(experience),
	}
	f.LocationClause, f.LocationArgs = locations.Filter(s.locations, "u.location", location)
	if raw := strings.TrimSpace(availability); raw != "" && !strings.EqualFold(raw, "all") {
		parsed, err := enums.ParseProfileAvailability(raw)
		if err != nil {
			return Filter{}, pkgerrors.New(pkgerrors.CodeValidation, "availability must be available or busy").
				WithDetails(map[string]string{"availability": "is invalid"})
		}
		f.Availability = &parsed
	}
	return f, nil
}

func fromRows(rows []CandidateRow) []CandidateDTO {
	out := make([]CandidateDTO, 0, len(rows))
	for i := range rows {
		out = append(out, fromRow(&rows[i]))
	}
	return out
}

func fromRow(row *CandidateRow) CandidateDTO {
	dto := CandidateDTO{
		ID:             row.UserID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		UserName:       row.UserName,
		Email:          row.Email,
		Phone:          row.Phone,
		Location:       row.Location,
		Title:          row.Title,
		Experience:     row.Experience,
		SalaryCurrency: row.SalaryCurrency,
		Bio:            row.Bio,
		Availability:   row.Availability,
		CVFilePath:     row.CVFilePath,
		Certificates:   append([]string{}, row.Certificates...),
		CreatedAt:      row.UserCreatedAt,
		UpdatedAt:      row.ProfileUpdatedAt,
	}
	if row.ExpectedSalary.Valid {
		salary := row.ExpectedSalary.Decimal
		dto.ExpectedSalary = &salary
	}
	if row.AvailableFrom != nil {
		formatted := row.AvailableFrom.Format(dateLayout)
		dto.AvailableFrom = &formatted
	}
	return dto
}
