package amadeus

import "encoding/json"

// FlightOffer decodes only the slices the matcher and notifier read. Raw keeps
// the provider's original offer JSON so the booking call can pass it back
// verbatim, unknown fields included.
type FlightOffer struct {
	Raw              json.RawMessage   `json:"-"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`
	Itineraries      []Itinerary       `json:"itineraries"`
	Price            *Price            `json:"price"`
}

type TravelerPricing struct {
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment"`
}

type FareDetail struct {
	SegmentID string `json:"segmentId"`
	Class     string `json:"class"`
}

type Itinerary struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	ID          string   `json:"id"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	Aircraft    Aircraft `json:"aircraft"`
}

type Endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// Order is the booking response for a created flight order.
type Order struct {
	Data OrderData `json:"data"`
}

type OrderData struct {
	AssociatedRecords []AssociatedRecord `json:"associatedRecords"`
	Travelers         []OrderTraveler    `json:"travelers"`
	FlightOffers      []FlightOffer      `json:"flightOffers"`
}

type AssociatedRecord struct {
	Reference string `json:"reference"`
}

type OrderTraveler struct {
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Name        struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"name"`
}

// PNR returns the booking reference of the order, or "" when the provider
// returned none. An order without a PNR is still a created order.
func (o *Order) PNR() string {
	if o == nil || len(o.Data.AssociatedRecords) == 0 {
		return ""
	}
	return o.Data.AssociatedRecords[0].Reference
}
