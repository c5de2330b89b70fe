package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/classbell/internal/db"
)

// Settings are the values restored on the next launch.
type Settings struct {
	ClassTime uint64  // seconds
	RestTime  uint64  // seconds
	Volume    float64 // 0.0-1.0
	UpdatedAt time.Time
}

func getSettings(conn *sql.DB) (*Settings, error) {
	var classTime, restTime, updatedAt int64
	var volume float64

	row := conn.QueryRow(`SELECT class_time, rest_time, volume, updated_at FROM settings WHERE id = 1`)
	err := row.Scan(&classTime, &restTime, &volume, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no settings saved yet
	}
	if err != nil {
		return nil, err
	}

	return &Settings{
		ClassTime: uint64(max(classTime, 0)),
		RestTime:  uint64(max(restTime, 0)),
		Volume:    volume,
		UpdatedAt: time.Unix(updatedAt, 0),
	}, nil
}

func saveSettings(conn *sql.DB, s Settings) error {
	return db.WithTx(context.Background(), conn, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO settings (id, class_time, rest_time, volume, updated_at)
			VALUES (1, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				class_time = excluded.class_time,
				rest_time = excluded.rest_time,
				volume = excluded.volume,
				updated_at = excluded.updated_at
		`, int64(s.ClassTime), int64(s.RestTime), s.Volume, time.Now().Unix()) //nolint:gosec // seconds fit in int64
		return err
	})
}
