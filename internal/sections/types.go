package sections

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/util"
)

// Type enumerates the section variants a page can hold.
type Type string

const (
	TypeHero      Type = "HERO"
	TypeRichText  Type = "RICHTEXT"
	TypeBiography Type = "BIOGRAPHY"
	TypeStats     Type = "STATS"
	TypeVideos    Type = "VIDEOS"
)

// Types returns every recognised section type in declaration order.
func Types() []Type {
	return []Type{TypeHero, TypeRichText, TypeBiography, TypeStats, TypeVideos}
}

// Valid reports whether t is a recognised section type.
func (t Type) Valid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType normalises s into a recognised Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrSectionTypeInvalid, s)
	}
	return t, nil
}

// Direction selects the neighbour used by Move.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case DirectionUp, DirectionDown:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrDirectionInvalid, s)
	}
}

// Section is one ordered block of content on a page. Content holds the
// JSON form of the typed payload for Type; use Decode to obtain it.
type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	PageID    uuid.UUID      `bun:"page_id,notnull,type:uuid" json:"page_id"`
	Type      Type           `bun:"type,notnull" json:"type"`
	Order     int            `bun:"sort_order,notnull" json:"order"`
	Content   map[string]any `bun:"content,type:jsonb" json:"content"`
	Visible   bool           `bun:"visible,notnull" json:"visible"`
	CreatedAt time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Decode returns the typed payload for the section.
func (s *Section) Decode() (Content, error) {
	if s == nil {
		return nil, ErrSectionTypeInvalid
	}
	return DecodeContent(s.Type, s.Content)
}

// Less orders sections for display: ascending order, then creation time, then
// id so that ties resolve the same way on every call.
func Less(a, b *Section) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

// SortForDisplay sorts items in place using Less.
func SortForDisplay(items []*Section) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
}

// VisibleOnly returns the visible sections, preserving order.
func VisibleOnly(items []*Section) []*Section {
	out := make([]*Section, 0, len(items))
	for _, item := range items {
		if item != nil && item.Visible {
			out = append(out, item)
		}
	}
	return out
}

// Clone returns a deep copy of s.
func Clone(s *Section) *Section {
	if s == nil {
		return nil
	}
	cloned := *s
	cloned.Content = util.DeepCloneMap(s.Content)
	return &cloned
}

func cloneAll(items []*Section) []*Section {
	out := make([]*Section, 0, len(items))
	for _, item := range items {
		out = append(out, Clone(item))
	}
	return out
}


