package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cinematix/booking-orchestrator/internal/model"
)

// BookingRepo provides CRUD operations for finalized bookings and
// their seats.  A booking groups the seats and tickets produced by one
// completed transaction; seats live in the booking_seats table.  All
// timestamp fields are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking and all of its seats inside one
// transaction.  The booking reference must be unique; a duplicate
// insert fails, which keeps a re-run of a finalized completion from
// writing a second record for the same purchase.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const ins = `INSERT INTO bookings (ref, user_id, showtime_id, movie_title, subtotal_cents, fee_cents, total_cents, created_at)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, ins, b.Ref, b.UserID, b.ShowtimeID, b.MovieTitle,
		b.SubtotalCents, b.FeeCents, b.TotalCents, b.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	bookingID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("booking id: %w", err)
	}

	if len(b.Seats) > 0 {
		// row_number is reserved in MySQL 8, hence the backticks.
		query := "INSERT INTO booking_seats (booking_id, seat_id, `row_number`, seat_number, reservation_id, ticket_id) VALUES "
		args := make([]interface{}, 0, len(b.Seats)*6)
		for i, s := range b.Seats {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?)"
			args = append(args, bookingID, s.SeatID, s.RowNumber, s.SeatNumber, s.ReservationID, s.TicketID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert booking seats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}
	committed = true
	return nil
}

// GetByRef returns one booking by its reference for the given user.
// It returns ErrBookingNotFound when the reference is unknown and
// ErrForbidden when the booking belongs to a different user, so
// references cannot be used to probe other users' purchases.
func (r *BookingRepo) GetByRef(ctx context.Context, ref string, userID uint64) (*model.Booking, error) {
	const q = `SELECT id, ref, user_id, showtime_id, movie_title, subtotal_cents, fee_cents, total_cents, created_at
	           FROM bookings WHERE ref = ?`
	var id int64
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, ref).Scan(
		&id, &b.Ref, &b.UserID, &b.ShowtimeID, &b.MovieTitle,
		&b.SubtotalCents, &b.FeeCents, &b.TotalCents, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select booking: %w", err)
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	seats, err := r.seatsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	b.Seats = seats[id]
	if b.Seats == nil {
		b.Seats = []model.BookingSeat{}
	}
	return &b, nil
}

// ListByUser returns all bookings made by the given user, newest
// first.  When no bookings exist an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT id, ref, user_id, showtime_id, movie_title, subtotal_cents, fee_cents, total_cents, created_at
	           FROM bookings WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	ids := make([]int64, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var id int64
		var b model.Booking
		if err := rows.Scan(&id, &b.Ref, &b.UserID, &b.ShowtimeID, &b.MovieTitle,
			&b.SubtotalCents, &b.FeeCents, &b.TotalCents, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Seats = []model.BookingSeat{}
		index[id] = len(out)
		out = append(out, b)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	seats, err := r.seatsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, ss := range seats {
		if i, ok := index[id]; ok {
			out[i].Seats = ss
		}
	}
	return out, nil
}

// seatsFor loads the seats of all listed bookings in one query and
// groups them by booking id.
func (r *BookingRepo) seatsFor(ctx context.Context, bookingIDs []int64) (map[int64][]model.BookingSeat, error) {
	if len(bookingIDs) == 0 {
		return map[int64][]model.BookingSeat{}, nil
	}
	placeholders := make([]string, 0, len(bookingIDs))
	args := make([]interface{}, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := "SELECT booking_id, seat_id, `row_number`, seat_number, reservation_id, ticket_id " +
		"FROM booking_seats WHERE booking_id IN (" + strings.Join(placeholders, ",") + ") " +
		"ORDER BY booking_id, `row_number`, seat_number"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select booking seats: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]model.BookingSeat, len(bookingIDs))
	for rows.Next() {
		var bid int64
		var s model.BookingSeat
		if err := rows.Scan(&bid, &s.SeatID, &s.RowNumber, &s.SeatNumber, &s.ReservationID, &s.TicketID); err != nil {
			return nil, err
		}
		out[bid] = append(out[bid], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
