package domain

import "time"

// ClientProfile is a client's request metadata. The project fields are
// optional and may stay empty for the life of the account.
type ClientProfile struct {
	UserID             string    `json:"user_id"`
	Email              string    `json:"email"`
	ProjectTitle       string    `json:"project_title,omitempty"`
	ProjectDescription string    `json:"project_description,omitempty"`
	Budget             *float64  `json:"budget,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Complete reports whether the client has filled in their project details
// beyond the stub created at first login.
func (p *ClientProfile) Complete() bool {
	return p != nil && p.ProjectTitle != "" && p.ProjectDescription != ""
}

// ConsultantProfile is a consultant's public listing. Picture holds either an
// absolute URL or a storage-relative key; media.ResolveImageURL turns it into
// something displayable.
type ConsultantProfile struct {
	UserID           string    `json:"user_id"`
	Email            string    `json:"email"`
	ConsultationType string    `json:"consultation_type,omitempty"`
	HourlyRate       *float64  `json:"hourly_rate,omitempty"`
	ExperienceYears  *float64  `json:"experience_years,omitempty"`
	AvailableTime    string    `json:"available_time,omitempty"`
	Picture          string    `json:"picture,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Complete reports whether the listing carries the fields required to appear
// meaningfully in the directory: type, rate, and experience must all be set.
func (p *ConsultantProfile) Complete() bool {
	return p != nil && p.ConsultationType != "" && p.HourlyRate != nil && p.ExperienceYears != nil
}
