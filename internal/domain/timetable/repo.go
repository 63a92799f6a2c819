package timetable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Load возвращает расписание пользователя. Если его ещё нет — пустой срез без ошибки.
func (r *Repo) Load(ctx context.Context, ownerID int64) ([]Day, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT days FROM timetables WHERE owner_id = $1`, ownerID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []Day{}, nil
		}
		return nil, err
	}
	var days []Day
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, fmt.Errorf("decode timetable of owner %d: %w", ownerID, err)
	}
	return days, nil
}

func (r *Repo) Save(ctx context.Context, ownerID int64, days []Day) error {
	raw, err := json.Marshal(days)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO timetables (owner_id, days, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (owner_id) DO UPDATE SET
		  days = EXCLUDED.days, updated_at = now()
	`, ownerID, raw)
	return err
}
