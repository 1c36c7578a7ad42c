package amadeus

import (
	"strings"

	"github.com/avidato/farehold/internal/domain"
)

// MatchesPreference reports whether one fare offer satisfies one booking
// preference. Per traveler pricing it maps segment id to fare class, then
// walks every itinerary segment looking for the preference's carrier, flight
// number and class. All comparisons are upper-cased. Offers with missing
// pricings, segments or class entries simply never match.
func MatchesPreference(offer FlightOffer, pref domain.BookingPreference) bool {
	wantClass := strings.ToUpper(pref.BookingClass)

	for _, pricing := range offer.TravelerPricings {
		classBySegment := make(map[string]string, len(pricing.FareDetailsBySegment))
		for _, fd := range pricing.FareDetailsBySegment {
			classBySegment[fd.SegmentID] = strings.ToUpper(fd.Class)
		}

		for _, itin := range offer.Itineraries {
			for _, seg := range itin.Segments {
				if strings.EqualFold(seg.CarrierCode, pref.CarrierCode) &&
					strings.EqualFold(seg.Number, pref.FlightNumber) &&
					classBySegment[seg.ID] == wantClass {
					return true
				}
			}
		}
	}
	return false
}

// FindMatch selects the first offer satisfying any preference: preferences in
// caller order outermost, offers in provider order inside. Search stops at
// the first hit; later preferences are never evaluated.
func FindMatch(offers []FlightOffer, prefs []domain.BookingPreference) (*FlightOffer, *domain.BookingPreference) {
	for i := range prefs {
		for j := range offers {
			if MatchesPreference(offers[j], prefs[i]) {
				return &offers[j], &prefs[i]
			}
		}
	}
	return nil, nil
}
