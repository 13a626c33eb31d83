package profile

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/adapters/event"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

// FilterBySkillLimit caps the by-skill endpoint's result set.
const FilterBySkillLimit = 100

type ProfileUseCase struct {
	profileRepo profile.Repository
	cache       profile.Cache
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

// NewProfileUseCase wires the profile operations. cache and kClient may
// be nil; both are optional collaborators.
func NewProfileUseCase(repo profile.Repository, cache profile.Cache, kClient *event.KafkaProducerClient, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		cache:       cache,
		kafkaClient: kClient,
		logger:      log,
	}
}

type CreateProfileInput struct {
	Name      string
	Email     string
	Headline  *string
	Education json.RawMessage
	Skills    []string
	Projects  []profile.ProjectEntry
	Links     json.RawMessage
	Bio       *string
}

type CreateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteCreate(ctx context.Context, input CreateProfileInput) (*CreateProfileOutput, error) {
	if input.Name == "" || input.Email == "" {
		return nil, apperror.NewInvalidInput("name and email required", nil)
	}

	if input.Skills == nil {
		input.Skills = []string{}
	}
	if input.Projects == nil {
		input.Projects = []profile.ProjectEntry{}
	}

	newProfile := &profile.Profile{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Headline:  input.Headline,
		Education: input.Education,
		Skills:    input.Skills,
		Projects:  input.Projects,
		Links:     input.Links,
		Bio:       input.Bio,
	}

	created, err := uc.profileRepo.Create(ctx, newProfile)
	if err != nil {
		return nil, err
	}

	uc.publishEvent(event.ProfileEventTypeCreated, created.ID)

	return &CreateProfileOutput{Profile: created}, nil
}

type GetProfileInput struct {
	ID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGet(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	if uc.cache != nil {
		if p, ok := uc.cache.Get(ctx, input.ID); ok {
			return &GetProfileOutput{Profile: p}, nil
		}
	}

	p, err := uc.profileRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, p)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpdateProfileInput struct {
	ID     uuid.UUID
	Update profile.Update
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteUpdate(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	p, err := uc.profileRepo.Update(ctx, input.ID, input.Update)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, p.ID)
	}
	uc.publishEvent(event.ProfileEventTypeUpdated, p.ID)

	return &UpdateProfileOutput{Profile: p}, nil
}

type FilterBySkillInput struct {
	Skill string
}

type FilterBySkillOutput struct {
	Profiles []*profile.Profile
}

func (uc *ProfileUseCase) ExecuteFilterBySkill(ctx context.Context, input FilterBySkillInput) (*FilterBySkillOutput, error) {
	profiles, err := uc.profileRepo.FilterBySkill(ctx, input.Skill, FilterBySkillLimit)
	if err != nil {
		return nil, err
	}
	return &FilterBySkillOutput{Profiles: profiles}, nil
}

// publishEvent emits a profile event best-effort. The write path never
// waits on Kafka and never fails because of it.
func (uc *ProfileUseCase) publishEvent(eventType string, profileID uuid.UUID) {
	if uc.kafkaClient == nil {
		return
	}
	go func() {
		err := uc.kafkaClient.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType: eventType,
			ProfileID: profileID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish profile event", err,
				zap.String("event_type", eventType),
				zap.String("profile_id", profileID.String()))
		}
	}()
}
