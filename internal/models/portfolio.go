package models

import "time"

// Portfolio is the persisted portfolio record. Username is the counter key
// for views and is stored normalized (see NormalizeUsername).
type Portfolio struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName"`
	Role            string    `json:"role"`
	Location        string    `json:"location"`
	Username        string    `json:"username"`
	Bio             string    `json:"bio"`
	PrimaryFocus    string    `json:"primaryFocus"`
	SecondaryFocus  string    `json:"secondaryFocus"`
	Stack           string    `json:"stack"`
	Tooling         string    `json:"tooling"`
	Projects        []Project `json:"projects"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	ResumeURL       string    `json:"resumeUrl,omitempty"`
	Github          string    `json:"github,omitempty"`
	Linkedin        string    `json:"linkedin,omitempty"`
	Twitter         string    `json:"twitter,omitempty"`
	Email           string    `json:"email,omitempty"`
	Views           int64     `json:"views"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Project struct {
	ProjectName string `json:"projectName"`
	ProjectURL  string `json:"projectUrl"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// PortfolioUpdate is a partial update. Nil fields are left untouched.
type PortfolioUpdate struct {
	FullName        *string
	Role            *string
	Location        *string
	Username        *string
	Bio             *string
	PrimaryFocus    *string
	SecondaryFocus  *string
	Stack           *string
	Tooling         *string
	Projects        []Project
	ProfileImageURL *string
	ResumeURL       *string
	Github          *string
	Linkedin        *string
	Twitter         *string
	Email           *string
}

// Apply copies every set field of u onto p. Views, ID and CreatedAt are never touched.
func (u *PortfolioUpdate) Apply(p *Portfolio) {
	setString(&p.FullName, u.FullName)
	setString(&p.Role, u.Role)
	setString(&p.Location, u.Location)
	setString(&p.Username, u.Username)
	setString(&p.Bio, u.Bio)
	setString(&p.PrimaryFocus, u.PrimaryFocus)
	setString(&p.SecondaryFocus, u.SecondaryFocus)
	setString(&p.Stack, u.Stack)
	setString(&p.Tooling, u.Tooling)
	if u.Projects != nil {
		p.Projects = u.Projects
	}
	setString(&p.ProfileImageURL, u.ProfileImageURL)
	setString(&p.ResumeURL, u.ResumeURL)
	setString(&p.Github, u.Github)
	setString(&p.Linkedin, u.Linkedin)
	setString(&p.Twitter, u.Twitter)
	setString(&p.Email, u.Email)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
