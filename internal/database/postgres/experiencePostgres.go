package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/wanderbook/wanderbook/internal/entity"
)

type experienceRepository struct {
	db *sql.DB
}

func NewExperienceRepository(db *sql.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

func (r *experienceRepository) GetAll(ctx context.Context) ([]*entity.Experience, error) {
	query := `
		SELECT
			id, title, short_description, description, price_per_person,
			currency, images, duration, location, rating, reviews
		FROM experiences
		ORDER BY reviews DESC, rating DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query experiences: %w", err)
	}
	defer rows.Close()

	var experiences []*entity.Experience
	for rows.Next() {
		experience, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		experiences = append(experiences, experience)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating experiences: %w", err)
	}

	return experiences, nil
}

func (r *experienceRepository) GetByID(ctx context.Context, id string) (*entity.Experience, error) {
	query := `
		SELECT
			id, title, short_description, description, price_per_person,
			currency, images, duration, location, rating, reviews
		FROM experiences
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	experience, err := scanExperience(row)
	if err == sql.ErrNoRows {
		return nil, entity.ErrExperienceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	return experience, nil
}

func (r *experienceRepository) GetSlots(ctx context.Context, experienceID string) ([]*entity.Slot, error) {
	query := `
		SELECT slot_id, experience_id, date, time, capacity, booked
		FROM slots
		WHERE experience_id = $1
		ORDER BY date, time
	`

	rows, err := r.db.QueryContext(ctx, query, experienceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		var slot entity.Slot
		err := rows.Scan(
			&slot.SlotID,
			&slot.ExperienceID,
			&slot.Date,
			&slot.Time,
			&slot.Capacity,
			&slot.Booked,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slots: %w", err)
	}

	return slots, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExperience(row rowScanner) (*entity.Experience, error) {
	var experience entity.Experience
	err := row.Scan(
		&experience.ID,
		&experience.Title,
		&experience.ShortDescription,
		&experience.Description,
		&experience.PricePerPerson,
		&experience.Currency,
		pq.Array(&experience.Images),
		&experience.Duration,
		&experience.Location,
		&experience.Rating,
		&experience.Reviews,
	)
	if err != nil {
		return nil, err
	}
	return &experience, nil
}
