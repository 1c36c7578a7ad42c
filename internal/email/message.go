package email

import (
	"bytes"
	"html/template"

	"github.com/avidato/farehold/internal/amadeus"
)

// heldMessageTmpl is the PNR notification body. Every section tolerates
// missing data: an order without offers renders no flight table, one without
// travelers renders no traveler list.
var heldMessageTmpl = template.Must(template.New("held").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.7;">
  <h1 style="color:#3751a0">Your Ticket is Now Held!</h1>
  <p style="font-size:1.1em">
    Congratulations, your requested flight has been held successfully.<br/>
    <b>Your PNR (Passenger Name Record): <span style="color:#126e3b;font-size:1.25em">{{.PNR}}</span></b>
  </p>
{{- if .Segment}}
  <h2 style="margin-bottom:0">Flight Details</h2>
  <table style="border-collapse:collapse;width:100%;margin-bottom:16px">
    <tr><td style="padding:8px"><b>Flight</b></td><td style="padding:8px">{{.Segment.CarrierCode}} {{.Segment.Number}}</td></tr>
    <tr><td style="padding:8px"><b>From</b></td><td style="padding:8px">{{.Segment.Departure.IATACode}} ({{.Segment.Departure.At}})</td></tr>
    <tr><td style="padding:8px"><b>To</b></td><td style="padding:8px">{{.Segment.Arrival.IATACode}} ({{.Segment.Arrival.At}})</td></tr>
    <tr><td style="padding:8px"><b>Aircraft</b></td><td style="padding:8px">{{.Segment.Aircraft.Code}}</td></tr>
{{- if .Price}}
    <tr><td style="padding:8px"><b>Total Price</b></td><td style="padding:8px">{{.Price.Total}} {{.Price.Currency}}</td></tr>
{{- end}}
  </table>
{{- else if .Price}}
  <h2 style="margin-bottom:0">Flight Details</h2>
  <table style="border-collapse:collapse;width:100%;margin-bottom:16px">
    <tr><td style="padding:8px"><b>Total Price</b></td><td style="padding:8px">{{.Price.Total}} {{.Price.Currency}}</td></tr>
  </table>
{{- end}}
{{- if .Travelers}}
  <h2 style="margin-bottom:0">Traveler(s) Info</h2>
{{- range $idx, $trav := .Travelers}}
  <div>
    <b>Traveler #{{inc $idx}}:</b>
    <ul>
      <li>Name: {{$trav.Name.FirstName}} {{$trav.Name.LastName}}</li>
      <li>Date of Birth: {{$trav.DateOfBirth}}</li>
      <li>Gender: {{$trav.Gender}}</li>
    </ul>
  </div>
{{- end}}
{{- end}}
  <p>
    <b>Please note:</b> This is a held reservation. To confirm and issue your ticket, proceed with payment as per your agent's instructions or airline policy.<br>
    If you need help or wish to modify your booking, reply to this email.
  </p>
  <div style="margin-top:32px; font-size:0.95em; color:#888">
    <b>This email was generated automatically. Please do not share your PNR with anyone you do not trust.</b>
  </div>
</div>`))

type heldMessageData struct {
	PNR       string
	Segment   *amadeus.Segment
	Price     *amadeus.Price
	Travelers []amadeus.OrderTraveler
}

// RenderHeldMessage builds the HTML body for a held-ticket notification.
// A nil order still yields a valid message naming just the PNR.
func RenderHeldMessage(pnr string, order *amadeus.Order) (string, error) {
	data := heldMessageData{PNR: pnr}
	if order != nil {
		if len(order.Data.FlightOffers) > 0 {
			offer := order.Data.FlightOffers[0]
			if len(offer.Itineraries) > 0 && len(offer.Itineraries[0].Segments) > 0 {
				data.Segment = &offer.Itineraries[0].Segments[0]
			}
			data.Price = offer.Price
		}
		data.Travelers = order.Data.Travelers
	}

	var buf bytes.Buffer
	if err := heldMessageTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
