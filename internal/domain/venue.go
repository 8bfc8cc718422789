package domain

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Venue struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	City    string   `json:"city"`
	Coords  Coords   `json:"coords"`
	Reviews []Review `json:"reviews"`
}

// Snapshot is the entire persisted collection, loaded and saved as one unit.
type Snapshot struct {
	Venues []Venue `json:"venues"`
}

// Find returns a pointer into the snapshot's backing array so callers can
// mutate the venue in place before saving. Nil when the id is unknown.
func (s *Snapshot) Find(id string) *Venue {
	for i := range s.Venues {
		if s.Venues[i].ID == id {
			return &s.Venues[i]
		}
	}
	return nil
}

// Read models

type VenueSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Coords      Coords  `json:"coords"`
	AvgRatings  Ratings `json:"avgRatings"`
	ReviewCount int     `json:"reviewCount"`
}

type VenueDetail struct {
	Venue
	AvgRatings Ratings `json:"avgRatings"`
}
