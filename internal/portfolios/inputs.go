package portfolios

import (
	"io"
	"strings"

	"portfolio-views/internal/models"
)

type ProjectInput struct {
	ProjectName string `json:"projectName" validate:"required"`
	ProjectURL  string `json:"projectUrl" validate:"required,url"`
	Description string `json:"description" validate:"required"`
}

// CreateInput is the payload of a new portfolio. String fields are trimmed
// before validation and the username is lower-cased.
type CreateInput struct {
	FullName       string         `json:"fullName" validate:"required,min=2"`
	Role           string         `json:"role" validate:"required,min=2"`
	Location       string         `json:"location" validate:"required,min=2"`
	Username       string         `json:"username" validate:"required,username"`
	Bio            string         `json:"bio" validate:"required"`
	PrimaryFocus   string         `json:"primaryFocus" validate:"required"`
	SecondaryFocus string         `json:"secondaryFocus" validate:"required"`
	Stack          string         `json:"stack" validate:"required"`
	Tooling        string         `json:"tooling" validate:"required"`
	Projects       []ProjectInput `json:"projects" validate:"required,min=1,dive"`
	Github         string         `json:"github,omitempty" validate:"omitempty,url"`
	Linkedin       string         `json:"linkedin,omitempty" validate:"omitempty,url"`
	Twitter        string         `json:"twitter,omitempty" validate:"omitempty,url"`
	Email          string         `json:"email,omitempty" validate:"omitempty,email"`
}

func (in *CreateInput) normalize() {
	for _, s := range []*string{
		&in.FullName, &in.Role, &in.Location, &in.Bio, &in.PrimaryFocus, &in.SecondaryFocus,
		&in.Stack, &in.Tooling, &in.Github, &in.Linkedin, &in.Twitter, &in.Email,
	} {
		*s = strings.TrimSpace(*s)
	}
	in.Username = models.NormalizeUsername(in.Username)
	normalizeProjects(in.Projects)
}

// UpdateInput is a partial update. Nil fields are left untouched; a non-nil
// field is validated like its CreateInput counterpart.
type UpdateInput struct {
	FullName       *string        `json:"fullName" validate:"omitnil,min=2"`
	Role           *string        `json:"role" validate:"omitnil,min=2"`
	Location       *string        `json:"location" validate:"omitnil,min=2"`
	Username       *string        `json:"username" validate:"omitnil,username"`
	Bio            *string        `json:"bio" validate:"omitnil,min=1"`
	PrimaryFocus   *string        `json:"primaryFocus" validate:"omitnil,min=1"`
	SecondaryFocus *string        `json:"secondaryFocus" validate:"omitnil,min=1"`
	Stack          *string        `json:"stack" validate:"omitnil,min=1"`
	Tooling        *string        `json:"tooling" validate:"omitnil,min=1"`
	Projects       []ProjectInput `json:"projects" validate:"omitempty,dive"`
	Github         *string        `json:"github" validate:"omitnil,url"`
	Linkedin       *string        `json:"linkedin" validate:"omitnil,url"`
	Twitter        *string        `json:"twitter" validate:"omitnil,url"`
	Email          *string        `json:"email" validate:"omitnil,email"`
}

func (in *UpdateInput) normalize() {
	for _, s := range in.stringFields() {
		if *s != nil {
			v := strings.TrimSpace(**s)
			*s = &v
		}
	}
	if in.Username != nil {
		v := models.NormalizeUsername(*in.Username)
		in.Username = &v
	}
	normalizeProjects(in.Projects)
}

func (in *UpdateInput) isEmpty() bool {
	for _, s := range in.stringFields() {
		if *s != nil {
			return false
		}
	}
	return in.Projects == nil
}

func (in *UpdateInput) stringFields() []**string {
	return []**string{
		&in.FullName, &in.Role, &in.Location, &in.Username, &in.Bio, &in.PrimaryFocus,
		&in.SecondaryFocus, &in.Stack, &in.Tooling, &in.Github, &in.Linkedin, &in.Twitter, &in.Email,
	}
}

func normalizeProjects(projects []ProjectInput) {
	for i := range projects {
		projects[i].ProjectName = strings.TrimSpace(projects[i].ProjectName)
		projects[i].ProjectURL = strings.TrimSpace(projects[i].ProjectURL)
		projects[i].Description = strings.TrimSpace(projects[i].Description)
	}
}

func toProjects(inputs []ProjectInput, imageURLs []string) []models.Project {
	projects := make([]models.Project, len(inputs))
	for i, in := range inputs {
		projects[i] = models.Project{
			ProjectName: in.ProjectName,
			ProjectURL:  in.ProjectURL,
			Description: in.Description,
		}
		if i < len(imageURLs) {
			projects[i].ImageURL = imageURLs[i]
		}
	}
	return projects
}

// Upload is one file of a multipart request. Open may be called once.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Files groups the optional uploads of a create or update request. Project
// images are matched to projects by index.
type Files struct {
	ProfileImage  *Upload
	Resume        *Upload
	ProjectImages []*Upload
}

func (f *Files) isEmpty() bool {
	return f == nil || (f.ProfileImage == nil && f.Resume == nil && len(f.ProjectImages) == 0)
}

type Availability struct {
	Available bool `json:"available"`
}
