package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrVersionConflict снимок успели перезаписать с другого устройства.
var ErrVersionConflict = errors.New("attendance: ledger version conflict")

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Load читает ledger пользователя. Нет строки — пустой ledger с версией 0.
// Счётчики нормализуются здесь один раз, дальше по коду им можно доверять.
func (r *Repo) Load(ctx context.Context, ownerID int64) (Ledger, error) {
	var (
		raw     []byte
		version int64
	)
	err := r.pool.QueryRow(ctx, `SELECT subjects, version FROM ledgers WHERE owner_id = $1`, ownerID).
		Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ledger{Subjects: []Subject{}}, nil
		}
		return Ledger{}, err
	}

	var subjects []Subject
	if err := json.Unmarshal(raw, &subjects); err != nil {
		return Ledger{}, fmt.Errorf("decode ledger of owner %d: %w", ownerID, err)
	}
	for i := range subjects {
		subjects[i] = Normalize(subjects[i])
	}
	return Ledger{Subjects: subjects, Version: version}, nil
}

// Save записывает снимок целиком, если версия в БД совпадает с l.Version.
// Возвращает ledger с новой версией.
func (r *Repo) Save(ctx context.Context, ownerID int64, l Ledger) (Ledger, error) {
	if l.Subjects == nil {
		l.Subjects = []Subject{}
	}
	raw, err := json.Marshal(l.Subjects)
	if err != nil {
		return l, err
	}

	var next int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO ledgers (owner_id, subjects, version, updated_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (owner_id) DO UPDATE SET
		  subjects = EXCLUDED.subjects,
		  version = ledgers.version + 1,
		  updated_at = now()
		WHERE ledgers.version = $3
		RETURNING version
	`, ownerID, raw, l.Version).Scan(&next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return l, ErrVersionConflict
		}
		return l, err
	}
	// новая строка при l.Version != 0 означает, что её кто-то удалил; считаем это нормальной записью
	l.Version = next
	return l, nil
}
