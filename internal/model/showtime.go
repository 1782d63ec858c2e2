package model

import "time"

// Showtime is one screening of a movie in a hall.  The per-seat price
// is a property of the showtime, so a multi-seat selection always
// prices as seat count times PriceCents.  Times are UTC.
//
// Fields:
//  ID         – backend identifier.
//  MovieID    – movie being screened.
//  HallID     – hall in which the screening takes place.
//  StartTime  – when the screening starts.
//  EndTime    – when the screening ends.
//  PriceCents – price of one seat in integer cents.
type Showtime struct {
	ID         uint64    `json:"id"`
	MovieID    uint64    `json:"movieId"`
	HallID     uint64    `json:"hallId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	PriceCents uint32    `json:"priceCents"`
}
