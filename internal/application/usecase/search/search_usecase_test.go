package search

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
)

type recordingRepo struct {
	profile.Repository
	searchCalls int
	lastQuery   string
	lastLimit   int
	results     []*profile.Profile
}

func (r *recordingRepo) SearchText(_ context.Context, query string, limit int) ([]*profile.Profile, error) {
	r.searchCalls++
	r.lastQuery = query
	r.lastLimit = limit
	return r.results, nil
}

func TestSearch_BlankQuerySkipsStore(t *testing.T) {
	repo := &recordingRepo{}
	uc := NewSearchUseCase(repo)

	for _, q := range []string{"", "   ", "\t\n"} {
		out, err := uc.Execute(context.Background(), SearchInput{Query: q})
		require.NoError(t, err)
		assert.Empty(t, out.Profiles)
		assert.NotNil(t, out.Profiles)
	}
	assert.Zero(t, repo.searchCalls)
}

func TestSearch_TrimsAndCapsQuery(t *testing.T) {
	repo := &recordingRepo{
		results: []*profile.Profile{{ID: uuid.New(), Name: "Ada"}},
	}
	uc := NewSearchUseCase(repo)

	out, err := uc.Execute(context.Background(), SearchInput{Query: "  ada  "})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.searchCalls)
	assert.Equal(t, "ada", repo.lastQuery)
	assert.Equal(t, SearchLimit, repo.lastLimit)
	assert.Len(t, out.Profiles, 1)
}
