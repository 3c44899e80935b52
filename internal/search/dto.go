package search

import (
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobSeekersRequest is the recruiter's candidate search.
type JobSeekersRequest struct {
	JobTitle     string `json:"jobTitle" validate:"omitempty,max=255"`
	Location     string `json:"location" validate:"omitempty,max=255"`
	Experience   string `json:"experience" validate:"omitempty,max=100"`
	Availability string `json:"availability" validate:"omitempty,oneof=available busy all"`
	Limit        int    `json:"limit" validate:"omitempty,min=0,max=100"`
	Offset       int    `json:"offset" validate:"omitempty,min=0"`
}

// CandidateDTO flattens a freelancer account and profile.
type CandidateDTO struct {
	ID             uuid.UUID                 `json:"id"`
	FirstName      string                    `json:"firstName"`
	LastName       string                    `json:"lastName"`
	UserName       string                    `json:"userName"`
	Email          string                    `json:"email"`
	Phone          string                    `json:"phone"`
	Location       string                    `json:"location"`
	Title          string                    `json:"title"`
	Experience     string                    `json:"experience"`
	ExpectedSalary *decimal.Decimal          `json:"expectedSalary"`
	SalaryCurrency string                    `json:"salaryCurrency"`
	Bio            string                    `json:"bio"`
	Availability   enums.ProfileAvailability `json:"availability"`
	AvailableFrom  *string                   `json:"availableFrom"`
	CVFilePath     *string                   `json:"cvFilePath"`
	Certificates   []string                  `json:"certificates"`
	RelevanceScore int                       `json:"relevanceScore"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
}

type SearchResult struct {
	Candidates     []CandidateDTO    `json:"candidates"`
	Total          int               `json:"total"`
	SearchCriteria JobSeekersRequest `json:"searchCriteria"`
}

type Stats struct {
	TotalCandidates  int64 `json:"totalCandidates" gorm:"column:total_candidates"`
	CandidatesWithCV int64 `json:"candidatesWithCV" gorm:"column:candidates_with_cv"`
}

// TitleBio is the text a profile is categorized by.
type TitleBio struct {
	Title string
	Bio   string
}

type CategoriesResult struct {
	Categories         []Category `json:"categories"`
	TotalProfessionals int        `json:"totalProfessionals"`
}

// FeaturedFreelancer is the landing page card.
type FeaturedFreelancer struct {
	ID           uuid.UUID                 `json:"id"`
	FirstName    string                    `json:"firstName"`
	LastName     string                    `json:"lastName"`
	Location     string                    `json:"location"`
	Title        string                    `json:"title"`
	Experience   string                    `json:"experience"`
	Availability enums.ProfileAvailability `json:"availability"`
}

// FreelancerListQuery filters the public freelancer directory.
type FreelancerListQuery struct {
	Location     string
	Experience   string
	Availability string
	Search       string
	Limit        int
	Offset       int
}

type FreelancerListResult struct {
	Freelancers []CandidateDTO `json:"freelancers"`
	Count       int            `json:"count"`
}
