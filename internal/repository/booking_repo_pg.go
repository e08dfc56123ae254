package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error)
	SetOrderID(ctx context.Context, id int64, orderID string) error
	// MarkPaidByOrderID flips paid conditionally and reports whether a row
	// actually changed, so duplicate callbacks are safe no-ops.
	MarkPaidByOrderID(ctx context.Context, orderID string) (bool, error)
	MarkPaidByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Booking, error)
	DeleteUnorderedBefore(ctx context.Context, deadline time.Time) (int64, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (name, email, phone, plan, start_date, paid)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING id, created_at, updated_at`,
		booking.Name, booking.Email, booking.Phone, booking.Plan, booking.StartDate).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, phone, plan, start_date, paid, COALESCE(gateway_order_id, ''), created_at, updated_at FROM bookings WHERE id=$1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, phone, plan, start_date, paid, COALESCE(gateway_order_id, ''), created_at, updated_at FROM bookings WHERE gateway_order_id=$1`, orderID)
	return scanBooking(row)
}

func (r *PGBookingRepository) SetOrderID(ctx context.Context, id int64, orderID string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET gateway_order_id=$1, updated_at=now() WHERE id=$2`, orderID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) MarkPaidByOrderID(ctx context.Context, orderID string) (bool, error) {
	// Conditional update keeps the paid flip atomic and idempotent even for
	// concurrent duplicate callbacks.
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET paid=true, updated_at=now() WHERE gateway_order_id=$1 AND paid=false`, orderID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGBookingRepository) MarkPaidByID(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET paid=true, updated_at=now() WHERE id=$1 AND paid=false`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, phone, plan, start_date, paid, COALESCE(gateway_order_id, ''), created_at, updated_at FROM bookings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Plan, &b.StartDate, &b.Paid, &b.GatewayOrderID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// DeleteUnorderedBefore removes rows that never received a gateway order id,
// left behind by a crash between insert and order creation.
func (r *PGBookingRepository) DeleteUnorderedBefore(ctx context.Context, deadline time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE gateway_order_id IS NULL AND paid=false AND created_at <= $1`, deadline)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Plan, &b.StartDate, &b.Paid, &b.GatewayOrderID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
