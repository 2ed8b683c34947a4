package sqlite

import (
	"context"

	"github.com/waypoint-labs/waypoint/internal/domain"
	"github.com/waypoint-labs/waypoint/internal/store"
)

type destinationsRepo struct {
	q dbtx
}

const destinationColumns = `id, name, description, location, created_at`

func (r *destinationsRepo) GetDestinationByID(ctx context.Context, id string) (domain.Destination, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+destinationColumns+` FROM destinations WHERE id = ?`, id)

	var d domain.Destination
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Location, &d.CreatedAt); err != nil {
		return domain.Destination{}, mapNotFound(err)
	}
	return d, nil
}

func (r *destinationsRepo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+destinationColumns+` FROM destinations ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []domain.Destination
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Location, &d.CreatedAt); err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func (r *destinationsRepo) CreateDestination(ctx context.Context, d domain.Destination) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO destinations (id, name, description, location)
		 VALUES (?, ?, ?, ?)`,
		d.ID, d.Name, d.Description, d.Location)
	return err
}

func (r *destinationsRepo) DeleteDestination(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM destinations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
