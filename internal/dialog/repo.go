package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StateTTL незавершённый диалог старше суток считается брошенным.
const StateTTL = 24 * time.Hour

type Repo struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool, ttl: StateTTL} }

func idle(chatID int64) *Item {
	return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}
}

// Get текущий шаг диалога. Нет строки или шаг протух — idle.
func (r *Repo) Get(ctx context.Context, chatID int64) (*Item, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT state, payload, updated_at FROM dialog_states WHERE chat_id = $1`, chatID)
	var (
		state     string
		raw       []byte
		updatedAt time.Time
	)
	if err := row.Scan(&state, &raw, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return idle(chatID), nil
		}
		return nil, err
	}
	if Expired(updatedAt, time.Now(), r.ttl) {
		return idle(chatID), nil
	}
	p := Payload{}
	if err := json.Unmarshal(raw, &p); err != nil {
		return idle(chatID), nil
	}
	return &Item{ChatID: chatID, State: State(state), Payload: p}, nil
}

func (r *Repo) Set(ctx context.Context, chatID int64, state State, payload Payload) error {
	if payload == nil {
		payload = Payload{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO dialog_states (chat_id, state, payload, updated_at)
		VALUES ($1,$2,$3,now())
		ON CONFLICT (chat_id) DO UPDATE SET
		  state=$2, payload=$3, updated_at=now()
	`, chatID, string(state), raw)
	return err
}

func (r *Repo) Reset(ctx context.Context, chatID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM dialog_states WHERE chat_id = $1`, chatID)
	return err
}

func Expired(updatedAt, now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(updatedAt) > ttl
}
