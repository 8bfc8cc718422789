package domain

// Ratings holds the four category scores. On a Review they are the raw
// submitted values; in read models they are per-category averages.
type Ratings struct {
	Bathrooms int `json:"bathrooms"`
	Food      int `json:"food"`
	Parking   int `json:"parking"`
	Fields    int `json:"fields"`
}

type Review struct {
	ID        string   `json:"id"`
	Author    string   `json:"author"`
	Text      string   `json:"text"`
	Ratings   Ratings  `json:"ratings"`
	Photos    []string `json:"photos"`
	CreatedAt string   `json:"createdAt"`
}

// AnonymousAuthor is stamped on reviews submitted without an author name.
const AnonymousAuthor = "Anonymous"

// MaxReviewPhotos caps how many photo references a single review may carry.
// Enforced by the upload layer before the review ever reaches the service.
const MaxReviewPhotos = 5
