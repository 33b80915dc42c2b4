package service

import (
	"sort"

	"foodcart/restaurateur-svc/internal/domain"
)

// FulfillingRestaurants returns the restaurants that have every product of
// the order on sale. offers maps a product id to the restaurants selling
// it. Restaurants are compared by id; the result is ordered by id.
func FulfillingRestaurants(lines []domain.OrderLine, offers map[int][]domain.Offer) []domain.Candidate {
	if len(lines) == 0 {
		return nil
	}

	var common map[int]domain.Offer
	for _, line := range lines {
		sellers := make(map[int]domain.Offer, len(offers[line.ProductID]))
		for _, offer := range offers[line.ProductID] {
			if common == nil {
				sellers[offer.RestaurantID] = offer
				continue
			}
			if _, ok := common[offer.RestaurantID]; ok {
				sellers[offer.RestaurantID] = offer
			}
		}
		common = sellers
		if len(common) == 0 {
			return nil
		}
	}

	candidates := make([]domain.Candidate, 0, len(common))
	for _, offer := range common {
		candidates = append(candidates, domain.Candidate{
			RestaurantID: offer.RestaurantID,
			Name:         offer.RestaurantName,
			Address:      offer.RestaurantAddress,
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].RestaurantID < candidates[j].RestaurantID
	})
	return candidates
}

func groupOffers(offers []domain.Offer) map[int][]domain.Offer {
	grouped := make(map[int][]domain.Offer)
	for _, offer := range offers {
		grouped[offer.ProductID] = append(grouped[offer.ProductID], offer)
	}
	return grouped
}
