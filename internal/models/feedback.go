package models

import "time"

// Feedback is a free-text user submission. Submitting does not require a
// login, so UserID may be empty.
type Feedback struct {
	FeedbackID string    `json:"feedback_id" badgerhold:"key"`
	UserID     string    `json:"-"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// FavoriteStock is one ticker a user has starred.
type FavoriteStock struct {
	Key     string    `json:"-" badgerhold:"key"` // userID + "/" + ticker
	UserID  string    `json:"-" badgerhold:"index"`
	Ticker  string    `json:"ticker"`
	AddedAt time.Time `json:"added_at"`
}
