package repository

import (
	"context"
	"errors"

	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type PGContactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) ContactRepository {
	return &PGContactRepository{db: db}
}

func (r *PGContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	return r.db.QueryRow(ctx, `INSERT INTO contacts (name, email, number, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		contact.Name, contact.Email, contact.Number, contact.Message).
		Scan(&contact.ID, &contact.CreatedAt)
}

func (r *PGContactRepository) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, number, message, created_at FROM contacts WHERE id=$1`, id)
	var c domain.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Number, &c.Message, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGContactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, number, message, created_at FROM contacts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Number, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *PGContactRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ ContactRepository = (*PGContactRepository)(nil)
