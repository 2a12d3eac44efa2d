package models

// Contestant represents a registered player profile
type Contestant struct {
	// UserID is the Discord user ID of the contestant
	UserID string

	// Name is the contestant's in-game name
	Name string

	// AccountID is the contestant's account code on the score API
	AccountID string

	// Rating is the contestant's skill rating, in fixed-point units (x100)
	Rating int

	// Best30 is the average of the contestant's thirty best plays,
	// in the same fixed-point units. Zero when it has never been synced.
	Best30 int
}
