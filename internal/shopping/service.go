package shopping

import (
	"philcali.me/cookbook/internal/data"
	"philcali.me/cookbook/internal/exceptions"
)

// Service computes the merged shopping list across every recipe in a
// user's cart. Reads only; the storage engine's consistent multi-row
// reads are all it needs.
type Service struct {
	Memberships data.MembershipDataService
	Ledger      data.LedgerDataService
}

func NewService(memberships data.MembershipDataService, entries data.LedgerDataService) *Service {
	return &Service{
		Memberships: memberships,
		Ledger:      entries,
	}
}

// BuildShoppingList aggregates the caller's cart. An empty cart is an
// Empty error, never a zero-line success: "nothing to aggregate" is a
// client mistake at the boundary.
func (s *Service) BuildShoppingList(username string) ([]Line, error) {
	var carted []data.MembershipDTO
	params := data.QueryParams{}
	for {
		page, err := s.Memberships.ListMemberships(username, data.CartKind, params)
		if err != nil {
			return nil, err
		}
		carted = append(carted, page.Items...)
		if len(page.NextToken) == 0 {
			break
		}
		params.NextToken = page.NextToken
	}
	var entries []data.ResolvedEntryDTO
	for _, membership := range carted {
		resolved, err := s.Ledger.EntriesFor(membership.RecipeId())
		if err != nil {
			return nil, err
		}
		entries = append(entries, resolved...)
	}
	lines := Aggregate(entries)
	if len(lines) == 0 {
		return nil, exceptions.Empty("shopping cart")
	}
	return lines, nil
}
