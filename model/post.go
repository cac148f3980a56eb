package model

// PostRecord is the durable record of a post that has been published. The
// whole collection is persisted as a single JSON file by the tracker.
//
// ID: identifier assigned by the blog backend, unique, immutable once set
// Title/URL: set at creation
// Topic: free-text label, may be empty ("auto-selected" when none was given)
// Tags: ordered tag names as published
// PublishedDate: ISO-8601 timestamp, set at creation, not updated on edit
type PostRecord struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Topic         string   `json:"topic"`
	Tags          []string `json:"tags"`
	PublishedDate string   `json:"published_date"`
}

// DraftPost is the in-memory, not-yet-published content bundle produced by
// generation and consumed by publishing. It is never persisted on its own.
type DraftPost struct {
	Title    string
	Content  string
	Excerpt  string
	Tags     []string
	Topic    string
	Category string
}
