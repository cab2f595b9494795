package sections

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
)

// Move swaps the section's order with its nearest neighbour on the same page.
// At the first (UP) or last (DOWN) position nothing is written and the call
// still succeeds.
func (s *service) Move(ctx context.Context, req MoveSectionRequest) (*MoveResult, error) {
	errs := validation.Errors{}
	if req.ID == uuid.Nil {
		errs["id"] = validation.NewError("sections.move.id_required", "id is required")
	}
	if req.Direction != DirectionUp && req.Direction != DirectionDown {
		errs["direction"] = validation.NewError("sections.move.direction_invalid", ErrDirectionInvalid.Error())
	}
	if len(errs) > 0 {
		return nil, errs
	}

	target, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	siblings, err := s.repo.ListByPage(ctx, target.PageID)
	if err != nil {
		return nil, err
	}

	neighbor := findNeighbor(target, siblings, req.Direction)
	logger := logging.WithFields(s.logger, map[string]any{
		"section_id": target.ID,
		"page_id":    target.PageID,
		"direction":  req.Direction,
	})
	if neighbor == nil {
		logger.Debug("sections.move.boundary")
		return &MoveResult{Section: target}, nil
	}

	if err := s.repo.SwapOrder(ctx, target.ID, neighbor.ID, s.now().UTC()); err != nil {
		return nil, err
	}

	moved, err := s.repo.GetByID(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	swapped, err := s.repo.GetByID(ctx, neighbor.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("sections.move.success", "neighbor_id", neighbor.ID)
	return &MoveResult{Section: moved, Neighbor: swapped, Moved: true}, nil
}

// findNeighbor returns the closest sibling whose order is strictly less (UP)
// or strictly greater (DOWN) than the target's. Among siblings sharing that
// order the one adjacent in display order wins.
func findNeighbor(target *Section, siblings []*Section, direction Direction) *Section {
	var best *Section
	for _, candidate := range siblings {
		if candidate == nil || candidate.ID == target.ID {
			continue
		}
		switch direction {
		case DirectionUp:
			if candidate.Order >= target.Order {
				continue
			}
			if best == nil || candidate.Order > best.Order || (candidate.Order == best.Order && Less(best, candidate)) {
				best = candidate
			}
		case DirectionDown:
			if candidate.Order <= target.Order {
				continue
			}
			if best == nil || candidate.Order < best.Order || (candidate.Order == best.Order && Less(candidate, best)) {
				best = candidate
			}
		}
	}
	return best
}

// Renumber rewrites the page's orders to 0..n-1 keeping the current display
// order. It repairs gaps and duplicates left by concurrent edits.
func (s *service) Renumber(ctx context.Context, pageID uuid.UUID) ([]*Section, error) {
	if pageID == uuid.Nil {
		return nil, validation.Errors{
			"page_id": validation.NewError("sections.renumber.page_id_required", "page_id is required"),
		}
	}
	records, err := s.repo.ListByPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	SortForDisplay(records)

	ids := make([]uuid.UUID, len(records))
	for i, record := range records {
		ids[i] = record.ID
	}
	if err := s.repo.Renumber(ctx, pageID, ids, s.now().UTC()); err != nil {
		return nil, err
	}
	s.logger.Info("sections.renumber.success", "page_id", pageID, "count", len(ids))
	return s.ListByPage(ctx, pageID)
}
