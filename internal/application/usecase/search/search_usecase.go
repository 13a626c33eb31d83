package search

import (
	"context"
	"strings"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
)

// SearchLimit caps text search results.
const SearchLimit = 50

type SearchUseCase struct {
	profileRepo profile.Repository
}

func NewSearchUseCase(repo profile.Repository) *SearchUseCase {
	return &SearchUseCase{profileRepo: repo}
}

type SearchInput struct {
	Query string
}

type SearchOutput struct {
	Profiles []*profile.Profile
}

// Execute runs a case-insensitive substring search over name, headline
// and bio. A blank query returns an empty result without touching the
// store.
func (uc *SearchUseCase) Execute(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return &SearchOutput{Profiles: []*profile.Profile{}}, nil
	}

	profiles, err := uc.profileRepo.SearchText(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Profiles: profiles}, nil
}
