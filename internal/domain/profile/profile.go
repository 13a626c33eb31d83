package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProjectEntry is one item of a profile's projects document.
type ProjectEntry struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Links       map[string]string `json:"links"`
}

type Profile struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Headline  *string         `json:"headline"`
	Education json.RawMessage `json:"education"`
	Skills    []string        `json:"skills"`
	Projects  []ProjectEntry  `json:"projects"`
	Links     json.RawMessage `json:"links"`
	Bio       *string         `json:"bio"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Update carries a partial update. Nil means the field was absent from
// the request and the stored value must not change.
type Update struct {
	Name      *string
	Email     *string
	Headline  *string
	Education json.RawMessage
	Skills    *[]string
	Projects  *[]ProjectEntry
	Links     json.RawMessage
	Bio       *string
}

// IsEmpty reports whether the update would change nothing.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Headline == nil &&
		u.Education == nil && u.Skills == nil && u.Projects == nil &&
		u.Links == nil && u.Bio == nil
}

type Repository interface {
	Create(ctx context.Context, p *Profile) (*Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) (*Profile, error)
	List(ctx context.Context, limit int) ([]*Profile, error)
	SearchText(ctx context.Context, query string, limit int) ([]*Profile, error)
	FilterBySkill(ctx context.Context, skill string, limit int) ([]*Profile, error)
}

// Cache is an optional read-through layer in front of Repository.GetByID.
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (*Profile, bool)
	Set(ctx context.Context, p *Profile)
	Invalidate(ctx context.Context, id uuid.UUID)
}
