package http

import (
	"encoding/json"
	"time"

	projectUC "github.com/khoahotran/profile-directory/internal/application/usecase/project"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
)

type ProjectEntryDTO struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Links       map[string]string `json:"links"`
}

type CreateProfileRequest struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Headline  *string           `json:"headline"`
	Education json.RawMessage   `json:"education"`
	Skills    []string          `json:"skills"`
	Projects  []ProjectEntryDTO `json:"projects"`
	Links     json.RawMessage   `json:"links"`
	Bio       *string           `json:"bio"`
}

// UpdateProfileRequest is a partial field mapping. Nil pointer means the
// key was absent and the stored value stays untouched; keys outside this
// set are ignored by decoding.
type UpdateProfileRequest struct {
	Name      *string            `json:"name"`
	Email     *string            `json:"email"`
	Headline  *string            `json:"headline"`
	Education json.RawMessage    `json:"education"`
	Skills    *[]string          `json:"skills"`
	Projects  *[]ProjectEntryDTO `json:"projects"`
	Links     json.RawMessage    `json:"links"`
	Bio       *string            `json:"bio"`
}

func toDomainProjects(dtos []ProjectEntryDTO) []profile.ProjectEntry {
	if dtos == nil {
		return nil
	}
	entries := make([]profile.ProjectEntry, len(dtos))
	for i, d := range dtos {
		entries[i] = profile.ProjectEntry{
			Title:       d.Title,
			Description: d.Description,
			Links:       d.Links,
		}
	}
	return entries
}

func (req *UpdateProfileRequest) ToDomainUpdate() profile.Update {
	upd := profile.Update{
		Name:      req.Name,
		Email:     req.Email,
		Headline:  req.Headline,
		Education: req.Education,
		Links:     req.Links,
		Bio:       req.Bio,
	}
	if req.Skills != nil {
		skills := *req.Skills
		if skills == nil {
			skills = []string{}
		}
		upd.Skills = &skills
	}
	if req.Projects != nil {
		projects := toDomainProjects(*req.Projects)
		if projects == nil {
			projects = []profile.ProjectEntry{}
		}
		upd.Projects = &projects
	}
	return upd
}

// ProfileDTO is the full payload returned by GET /profiles/:id.
type ProfileDTO struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Headline  *string           `json:"headline"`
	Education json.RawMessage   `json:"education"`
	Skills    []string          `json:"skills"`
	Projects  []ProjectEntryDTO `json:"projects"`
	Links     json.RawMessage   `json:"links"`
	Bio       *string           `json:"bio"`
	CreatedAt time.Time         `json:"created_at"`
}

type SearchResultDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Headline *string  `json:"headline"`
	Skills   []string `json:"skills"`
}

type ProfileBySkillDTO struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Skills   []string          `json:"skills"`
	Projects []ProjectEntryDTO `json:"projects"`
}

type FlattenedProjectDTO struct {
	Owner       string            `json:"owner"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Links       map[string]string `json:"links"`
}

func toProjectDTOs(entries []profile.ProjectEntry) []ProjectEntryDTO {
	dtos := make([]ProjectEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ProjectEntryDTO{
			Title:       e.Title,
			Description: e.Description,
			Links:       e.Links,
		}
	}
	return dtos
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		ID:        p.ID.String(),
		Name:      p.Name,
		Email:     p.Email,
		Headline:  p.Headline,
		Education: p.Education,
		Skills:    p.Skills,
		Projects:  toProjectDTOs(p.Projects),
		Links:     p.Links,
		Bio:       p.Bio,
		CreatedAt: p.CreatedAt,
	}
}

func ToSearchResultDTO(p *profile.Profile) SearchResultDTO {
	return SearchResultDTO{
		ID:       p.ID.String(),
		Name:     p.Name,
		Headline: p.Headline,
		Skills:   p.Skills,
	}
}

func ToProfileBySkillDTO(p *profile.Profile) ProfileBySkillDTO {
	return ProfileBySkillDTO{
		ID:       p.ID.String(),
		Name:     p.Name,
		Email:    p.Email,
		Skills:   p.Skills,
		Projects: toProjectDTOs(p.Projects),
	}
}

func ToFlattenedProjectDTO(fp projectUC.FlattenedProject) FlattenedProjectDTO {
	return FlattenedProjectDTO{
		Owner:       fp.Owner,
		Title:       fp.Title,
		Description: fp.Description,
		Links:       fp.Links,
	}
}
