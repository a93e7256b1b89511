// Package trip holds the core data types of the TravelSync client.
// It has no behaviour of its own; other packages exchange these values.
package trip

// Member is a participant in a trip. HomeAirport is empty until the member
// has completed onboarding, and is set at most once by that member.
type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Preferences string `json:"preferences,omitempty"`
	HomeAirport string `json:"home_airport,omitempty"`
}

// Trip is the full view of a trip as returned by the trip-info endpoint.
type Trip struct {
	ID          int      `json:"trip_id"`
	Name        string   `json:"trip_name"`
	CreatorName string   `json:"creator_name"`
	IsMember    bool     `json:"is_member"`
	Members     []Member `json:"members"`
}

// Summary is the shortened form returned by the my-trips endpoint.
type Summary struct {
	ID          int    `json:"trip_id"`
	Name        string `json:"trip_name"`
	CreatorName string `json:"creator_name"`
}

// QuestionAnswer is one answered onboarding question.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
