package model

// Movie describes a film in the backend catalogue.  The orchestrator
// only reads movies; it snapshots the title into pending transactions
// and finalized bookings so they stay meaningful if the catalogue
// changes later.
//
// Fields:
//  ID          – backend identifier.
//  Title       – display title.
//  DurationMin – running time in minutes.
//  Language    – audio language label.
//  AgeRating   – rating label, e.g. "PG-13".
//  Image       – poster image URL.
type Movie struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	DurationMin uint32 `json:"durationMin"`
	Language    string `json:"language"`
	AgeRating   string `json:"ageRating"`
	Image       string `json:"image"`
}
