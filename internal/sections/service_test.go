package sections

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var testPageID = uuid.MustParse("00000000-0000-0000-0000-0000000000f1")

func newTestService(t *testing.T, ids ...string) (Service, *MemorySectionRepository) {
	t.Helper()
	repo := NewMemorySectionRepository()
	clock := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(repo,
		WithIDGenerator(sequentialIDs(ids...)),
		WithNow(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
	return svc, repo
}

func sequentialIDs(values ...string) IDGenerator {
	ids := make([]uuid.UUID, len(values))
	for i, value := range values {
		ids[i] = uuid.MustParse(value)
	}
	var idx int
	return func() uuid.UUID {
		if idx >= len(ids) {
			return uuid.New()
		}
		id := ids[idx]
		idx++
		return id
	}
}

func createSections(t *testing.T, svc Service, types ...Type) []*Section {
	t.Helper()
	out := make([]*Section, 0, len(types))
	for _, typ := range types {
		created, err := svc.Create(context.Background(), CreateSectionRequest{PageID: testPageID, Type: typ})
		if err != nil {
			t.Fatalf("create %s: %v", typ, err)
		}
		out = append(out, created)
	}
	return out
}

func orderOf(t *testing.T, svc Service, id uuid.UUID) int {
	t.Helper()
	record, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get %s: %v", id, err)
	}
	return record.Order
}

func TestCreateAppendsWithDefaultsAndVisible(t *testing.T) {
	svc, _ := newTestService(t,
		"00000000-0000-0000-0000-00000000a001",
		"00000000-0000-0000-0000-00000000a002",
	)
	created := createSections(t, svc, TypeHero, TypeStats)

	if created[0].ID != uuid.MustParse("00000000-0000-0000-0000-00000000a001") {
		t.Fatalf("unexpected id %s", created[0].ID)
	}
	if created[0].Order != 0 || created[1].Order != 1 {
		t.Fatalf("expected orders 0,1 got %d,%d", created[0].Order, created[1].Order)
	}
	if !created[0].Visible || !created[1].Visible {
		t.Fatal("expected sections to be visible by default")
	}
	stats, err := created[1].Decode()
	if err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if items := stats.(StatsContent).Items; len(items) != 1 {
		t.Fatalf("expected default stat item, got %+v", items)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateSectionRequest{Type: "CAROUSEL"})
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if _, ok := verrs["page_id"]; !ok {
		t.Fatalf("expected page_id error, got %v", verrs)
	}
	if _, ok := verrs["type"]; !ok {
		t.Fatalf("expected type error, got %v", verrs)
	}
}

func TestCreateValidatesContentAgainstType(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateSectionRequest{
		PageID:  testPageID,
		Type:    TypeHero,
		Content: map[string]any{"title_hi": "", "unknown": true},
	})
	if !errors.Is(err, ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", err)
	}
}

func TestCreateChecksPageLookup(t *testing.T) {
	missing := errors.New("page missing")
	svc := NewService(NewMemorySectionRepository(), WithPageLookup(func(context.Context, uuid.UUID) error {
		return missing
	}))
	_, err := svc.Create(context.Background(), CreateSectionRequest{PageID: testPageID, Type: TypeHero})
	if !errors.Is(err, missing) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestMoveSwapsWithNeighbourAndBack(t *testing.T) {
	svc, _ := newTestService(t)
	created := createSections(t, svc, TypeHero, TypeRichText, TypeStats)
	hero, rich := created[0], created[1]

	result, err := svc.Move(context.Background(), MoveSectionRequest{ID: hero.ID, Direction: DirectionDown})
	if err != nil {
		t.Fatalf("move down: %v", err)
	}
	if !result.Moved || result.Neighbor == nil || result.Neighbor.ID != rich.ID {
		t.Fatalf("expected swap with richtext, got %+v", result)
	}
	if orderOf(t, svc, hero.ID) != 1 || orderOf(t, svc, rich.ID) != 0 {
		t.Fatal("expected hero and richtext orders to be exchanged")
	}

	if _, err := svc.Move(context.Background(), MoveSectionRequest{ID: hero.ID, Direction: DirectionUp}); err != nil {
		t.Fatalf("move up: %v", err)
	}
	if orderOf(t, svc, hero.ID) != 0 || orderOf(t, svc, rich.ID) != 1 {
		t.Fatal("expected original order to be restored")
	}
	if orderOf(t, svc, created[2].ID) != 2 {
		t.Fatal("expected untouched section to keep its order")
	}
}

func TestMoveAtBoundaryIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	created := createSections(t, svc, TypeHero, TypeRichText)

	cases := []struct {
		id        uuid.UUID
		direction Direction
	}{
		{created[0].ID, DirectionUp},
		{created[1].ID, DirectionDown},
	}
	for _, tc := range cases {
		result, err := svc.Move(context.Background(), MoveSectionRequest{ID: tc.id, Direction: tc.direction})
		if err != nil {
			t.Fatalf("move %s: %v", tc.direction, err)
		}
		if result.Moved || result.Neighbor != nil {
			t.Fatalf("expected no-op, got %+v", result)
		}
	}
	if orderOf(t, svc, created[0].ID) != 0 || orderOf(t, svc, created[1].ID) != 1 {
		t.Fatal("expected orders unchanged")
	}
}

func TestMoveSkipsGapsToNearestNeighbour(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orders := []int{0, 5, 9}
	ids := make([]uuid.UUID, len(orders))
	for i, order := range orders {
		order := order
		created, err := svc.Create(ctx, CreateSectionRequest{PageID: testPageID, Type: TypeRichText, Order: &order})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids[i] = created.ID
	}

	if _, err := svc.Move(ctx, MoveSectionRequest{ID: ids[2], Direction: DirectionUp}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if orderOf(t, svc, ids[2]) != 5 || orderOf(t, svc, ids[1]) != 9 || orderOf(t, svc, ids[0]) != 0 {
		t.Fatal("expected swap with the nearest lower order only")
	}
}

func TestMoveUnknownSectionIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Move(context.Background(), MoveSectionRequest{ID: uuid.New(), Direction: DirectionUp})
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMoveRejectsInvalidDirection(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Move(context.Background(), MoveSectionRequest{ID: uuid.New(), Direction: "LEFT"})
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
}

func TestListByPageBreaksTiesDeterministically(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	zero := 0
	first, err := svc.Create(ctx, CreateSectionRequest{PageID: testPageID, Type: TypeHero, Order: &zero})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, CreateSectionRequest{PageID: testPageID, Type: TypeStats, Order: &zero})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		listed, err := svc.ListByPage(ctx, testPageID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if listed[0].ID != first.ID || listed[1].ID != second.ID {
			t.Fatalf("expected creation order tie-break, got %s,%s", listed[0].ID, listed[1].ID)
		}
	}
}

func TestRenumberCompactsOrders(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, order := range []int{3, 3, 10} {
		order := order
		if _, err := svc.Create(ctx, CreateSectionRequest{PageID: testPageID, Type: TypeRichText, Order: &order}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	before, _ := svc.ListByPage(ctx, testPageID)

	after, err := svc.Renumber(ctx, testPageID)
	if err != nil {
		t.Fatalf("renumber: %v", err)
	}
	for i, record := range after {
		if record.Order != i {
			t.Fatalf("expected order %d, got %d", i, record.Order)
		}
		if record.ID != before[i].ID {
			t.Fatalf("expected display order preserved at %d", i)
		}
	}
}

func TestUpdateChangesVisibilityAndContent(t *testing.T) {
	svc, _ := newTestService(t)
	created := createSections(t, svc, TypeRichText)[0]
	hidden := false

	updated, err := svc.Update(context.Background(), UpdateSectionRequest{
		ID:      created.ID,
		Content: map[string]any{"body_hi": "नमस्ते", "body_en": "Hello"},
		Visible: &hidden,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Visible {
		t.Fatal("expected section hidden")
	}
	if updated.Content["body_en"] != "Hello" {
		t.Fatalf("unexpected content %v", updated.Content)
	}

	_, err = svc.Update(context.Background(), UpdateSectionRequest{
		ID:      created.ID,
		Content: map[string]any{"title_hi": "wrong shape"},
	})
	if !errors.Is(err, ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", err)
	}
}

func TestDeleteRemovesSection(t *testing.T) {
	svc, _ := newTestService(t)
	created := createSections(t, svc, TypeVideos)[0]
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

// moveDuringUpdate swaps two sections right after the next GetByID, mimicking
// a reorder that lands between an update's read and its write.
type moveDuringUpdate struct {
	SectionRepository
	armed       bool
	first, next uuid.UUID
}

func (r *moveDuringUpdate) GetByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	record, err := r.SectionRepository.GetByID(ctx, id)
	if r.armed {
		r.armed = false
		if swapErr := r.SectionRepository.SwapOrder(ctx, r.first, r.next, time.Now()); swapErr != nil {
			return nil, swapErr
		}
	}
	return record, err
}

func TestUpdateKeepsOrderWrittenByConcurrentMove(t *testing.T) {
	ctx := context.Background()
	repo := &moveDuringUpdate{SectionRepository: NewMemorySectionRepository()}
	svc := NewService(repo)
	created := createSections(t, svc, TypeHero, TypeRichText)
	a, b := created[0], created[1]

	repo.first, repo.next, repo.armed = a.ID, b.ID, true
	hidden := false
	updated, err := svc.Update(ctx, UpdateSectionRequest{ID: a.ID, Visible: &hidden})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Order != 1 {
		t.Fatalf("expected update to report the moved order 1, got %d", updated.Order)
	}
	if got := orderOf(t, svc, a.ID); got != 1 {
		t.Fatalf("expected A at order 1 after the move, got %d", got)
	}
	if got := orderOf(t, svc, b.ID); got != 0 {
		t.Fatalf("expected B at order 0 after the move, got %d", got)
	}
	if stored, _ := svc.Get(ctx, a.ID); stored.Visible {
		t.Fatal("expected visibility change to persist")
	}
}
