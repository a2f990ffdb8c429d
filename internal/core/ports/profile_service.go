package ports

import (
	"context"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

// ProfileFields carries the editable fields of either profile kind as they
// arrive from a form. Numeric fields come in as strings; parsing is lenient
// and bad input becomes nil rather than an error.
type ProfileFields struct {
	ConsultationType   string
	HourlyRate         string
	ExperienceYears    string
	AvailableTime      string
	Picture            string
	ProjectTitle       string
	ProjectDescription string
	Budget             string
}

// Profile is the union returned by profile reads; exactly one side is set.
type Profile struct {
	Client     *domain.ClientProfile     `json:"client,omitempty"`
	Consultant *domain.ConsultantProfile `json:"consultant,omitempty"`
}

type ProfileService interface {
	// Save upserts the profile for userID under the given role, last write
	// wins.
	Save(ctx context.Context, userID, email, role string, fields ProfileFields) error
	Get(ctx context.Context, userID, role string) (*Profile, error)
}
