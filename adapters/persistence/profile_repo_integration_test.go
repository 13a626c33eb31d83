package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	profileRepo profile.Repository
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.profileRepo = NewPostgresProfileRepo(s.dbPool, logger.NewNop())
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *ProfileRepoIntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(context.Background(), "TRUNCATE profiles")
	s.Require().NoError(err)
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func (s *ProfileRepoIntegrationTestSuite) seed(name, email string, skills []string, projects []profile.ProjectEntry) *profile.Profile {
	if skills == nil {
		skills = []string{}
	}
	if projects == nil {
		projects = []profile.ProjectEntry{}
	}
	created, err := s.profileRepo.Create(context.Background(), &profile.Profile{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Skills:   skills,
		Projects: projects,
	})
	s.Require().NoError(err)
	return created
}

func (s *ProfileRepoIntegrationTestSuite) Test_Create_And_GetByID() {
	ctx := context.Background()

	headline := "Engineer"
	created, err := s.profileRepo.Create(ctx, &profile.Profile{
		ID:        uuid.New(),
		Name:      "Ada",
		Email:     "ada@x.com",
		Headline:  &headline,
		Education: json.RawMessage(`{"degree":"mathematics"}`),
		Skills:    []string{"rust", "systems"},
		Projects: []profile.ProjectEntry{
			{Title: "engine", Description: "analytical engine", Links: map[string]string{"repo": "https://example.com"}},
		},
	})
	s.Require().NoError(err)
	s.False(created.CreatedAt.IsZero())
	s.False(created.UpdatedAt.IsZero())

	got, err := s.profileRepo.GetByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Ada", got.Name)
	s.Equal("ada@x.com", got.Email)
	s.Require().NotNil(got.Headline)
	s.Equal("Engineer", *got.Headline)
	s.JSONEq(`{"degree":"mathematics"}`, string(got.Education))
	s.Equal([]string{"rust", "systems"}, got.Skills)
	s.Require().Len(got.Projects, 1)
	s.Equal("engine", got.Projects[0].Title)
	s.Nil(got.Bio)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Create_DefaultsToEmptySequences() {
	created := s.seed("Minimal", "minimal@x.com", nil, nil)

	got, err := s.profileRepo.GetByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.NotNil(got.Skills)
	s.Empty(got.Skills)
	s.NotNil(got.Projects)
	s.Empty(got.Projects)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Create_DuplicateEmail() {
	s.seed("First", "dup@x.com", nil, nil)

	_, err := s.profileRepo.Create(context.Background(), &profile.Profile{
		ID:       uuid.New(),
		Name:     "Second",
		Email:    "dup@x.com",
		Skills:   []string{},
		Projects: []profile.ProjectEntry{},
	})
	s.Require().Error(err)
	s.True(errors.Is(err, apperror.ErrConflict))
}

func (s *ProfileRepoIntegrationTestSuite) Test_GetByID_NotFound() {
	_, err := s.profileRepo.GetByID(context.Background(), uuid.New())
	s.Require().Error(err)
	s.True(errors.Is(err, apperror.ErrNotFound))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_PartialLeavesOtherColumns() {
	created := s.seed("Ada", "ada@x.com", []string{"rust", "systems"}, []profile.ProjectEntry{
		{Title: "engine", Description: "analytical engine"},
	})

	headline := "Engineer"
	updated, err := s.profileRepo.Update(context.Background(), created.ID, profile.Update{
		Headline: &headline,
	})
	s.Require().NoError(err)

	s.Require().NotNil(updated.Headline)
	s.Equal("Engineer", *updated.Headline)
	s.Equal("Ada", updated.Name)
	s.Equal("ada@x.com", updated.Email)
	s.Equal([]string{"rust", "systems"}, updated.Skills)
	s.Require().Len(updated.Projects, 1)
	s.True(updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_NotFound() {
	name := "Nobody"
	_, err := s.profileRepo.Update(context.Background(), uuid.New(), profile.Update{Name: &name})
	s.Require().Error(err)
	s.True(errors.Is(err, apperror.ErrNotFound))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_EmptyReturnsCurrentRow() {
	created := s.seed("Ada", "ada@x.com", nil, nil)

	got, err := s.profileRepo.Update(context.Background(), created.ID, profile.Update{})
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal(created.UpdatedAt, got.UpdatedAt)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FilterBySkill_ExactContainment() {
	s.seed("Ada", "ada@x.com", []string{"go", "systems"}, nil)
	s.seed("Grace", "grace@x.com", []string{"golang"}, nil)

	matches, err := s.profileRepo.FilterBySkill(context.Background(), "go", 100)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal("Ada", matches[0].Name)
}

func (s *ProfileRepoIntegrationTestSuite) Test_FilterBySkill_SpecialCharacters() {
	s.seed("Ada", "ada@x.com", []string{`c++ "modern"`}, nil)

	matches, err := s.profileRepo.FilterBySkill(context.Background(), `c++ "modern"`, 100)
	s.Require().NoError(err)
	s.Require().Len(matches, 1)

	matches, err = s.profileRepo.FilterBySkill(context.Background(), `"]; DROP TABLE profiles; --`, 100)
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *ProfileRepoIntegrationTestSuite) Test_SearchText_AcrossColumnsCaseInsensitive() {
	ctx := context.Background()

	bio := "Wrote the first COMPILER"
	_, err := s.profileRepo.Create(ctx, &profile.Profile{
		ID: uuid.New(), Name: "Grace", Email: "grace@x.com", Bio: &bio,
		Skills: []string{}, Projects: []profile.ProjectEntry{},
	})
	s.Require().NoError(err)

	headline := "compiler engineer"
	_, err = s.profileRepo.Create(ctx, &profile.Profile{
		ID: uuid.New(), Name: "Frances", Email: "frances@x.com", Headline: &headline,
		Skills: []string{}, Projects: []profile.ProjectEntry{},
	})
	s.Require().NoError(err)

	s.seed("Compiler Fan", "fan@x.com", nil, nil)
	s.seed("Unrelated", "other@x.com", nil, nil)

	matches, err := s.profileRepo.SearchText(ctx, "compiler", 50)
	s.Require().NoError(err)
	s.Len(matches, 3)
}

func (s *ProfileRepoIntegrationTestSuite) Test_SearchText_Limit() {
	for i := 0; i < 5; i++ {
		s.seed("Common Name", uuid.NewString()+"@x.com", nil, nil)
	}

	matches, err := s.profileRepo.SearchText(context.Background(), "common", 3)
	s.Require().NoError(err)
	s.Len(matches, 3)
}

func (s *ProfileRepoIntegrationTestSuite) Test_List_Limit() {
	for i := 0; i < 4; i++ {
		s.seed("Someone", uuid.NewString()+"@x.com", nil, nil)
	}

	profiles, err := s.profileRepo.List(context.Background(), 2)
	s.Require().NoError(err)
	s.Len(profiles, 2)
}
