package forms

// Places lists the venues a session can be held at; the first is the default
var Places = []string{
	"台北小巨蛋",
	"台中國家歌劇院",
	"高雄衛武營國家藝術文化中心",
}

// DefaultPlace is the venue new sessions start at
func DefaultPlace() string {
	return Places[0]
}

// venueSeats holds the standard seating plan per venue
var venueSeats = map[string][]SeatTierDraft{
	"台北小巨蛋": {
		{ID: 1, AreaName: "特A區", Price: 3600, Quantity: 50},
		{ID: 2, AreaName: "特B區", Price: 3200, Quantity: 50},
		{ID: 3, AreaName: "紅1區", Price: 2800, Quantity: 100},
		{ID: 4, AreaName: "紅2區", Price: 2400, Quantity: 100},
		{ID: 5, AreaName: "綠1區", Price: 2000, Quantity: 200},
		{ID: 6, AreaName: "綠2區", Price: 1600, Quantity: 200},
	},
}

// DefaultSeats returns a copy of the seating plan of place
func DefaultSeats(place string) []SeatTierDraft {
	return append([]SeatTierDraft(nil), venueSeats[place]...)
}
