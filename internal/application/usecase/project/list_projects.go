package project

import (
	"context"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
)

// ProfileScanLimit caps how many profiles feed the flattened listing.
const ProfileScanLimit = 200

type ListProjectsUseCase struct {
	profileRepo profile.Repository
}

func NewListProjectsUseCase(repo profile.Repository) *ListProjectsUseCase {
	return &ListProjectsUseCase{profileRepo: repo}
}

type ListProjectsInput struct {
	Skill string
}

type FlattenedProject struct {
	Owner       string
	Title       string
	Description string
	Links       map[string]string
}

type ListProjectsOutput struct {
	Projects []FlattenedProject
}

// Execute flattens projects across profiles, one entry per project with
// the profile's name as owner. A skill scopes the profile set via exact
// containment; otherwise all profiles up to the scan limit contribute.
func (uc *ListProjectsUseCase) Execute(ctx context.Context, input ListProjectsInput) (*ListProjectsOutput, error) {
	var (
		profiles []*profile.Profile
		err      error
	)
	if input.Skill != "" {
		profiles, err = uc.profileRepo.FilterBySkill(ctx, input.Skill, ProfileScanLimit)
	} else {
		profiles, err = uc.profileRepo.List(ctx, ProfileScanLimit)
	}
	if err != nil {
		return nil, err
	}

	flattened := make([]FlattenedProject, 0)
	for _, p := range profiles {
		for _, pr := range p.Projects {
			flattened = append(flattened, FlattenedProject{
				Owner:       p.Name,
				Title:       pr.Title,
				Description: pr.Description,
				Links:       pr.Links,
			})
		}
	}

	return &ListProjectsOutput{Projects: flattened}, nil
}
