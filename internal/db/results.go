package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"typingracer/internal/model"
)

type resultRow struct {
	ResultID        string         `db:"result_id"`
	UserID          sql.NullString `db:"user_id"`
	WPM             float64        `db:"wpm"`
	Accuracy        float64        `db:"accuracy"`
	TimeTaken       float64        `db:"time_taken"`
	CharactersTyped int            `db:"characters_typed"`
	Mistakes        int            `db:"mistakes"`
	TextLength      int            `db:"text_length"`
	CreatedAt       rowTime        `db:"created_at"`
}

func (r resultRow) toModel() model.Result {
	res := model.Result{
		ResultID:        r.ResultID,
		WPM:             r.WPM,
		Accuracy:        r.Accuracy,
		TimeTaken:       r.TimeTaken,
		CharactersTyped: r.CharactersTyped,
		Mistakes:        r.Mistakes,
		TextLength:      r.TextLength,
		Timestamp:       r.CreatedAt.Time,
	}
	if r.UserID.Valid {
		u := r.UserID.String
		res.UserID = &u
	}
	return res
}

// InsertResult writes one result as a single statement.
func (d *DB) InsertResult(ctx context.Context, r model.Result) error {
	query := d.conn.Rebind(fmt.Sprintf(`
		INSERT INTO %s (result_id, user_id, wpm, accuracy, time_taken, characters_typed, mistakes, text_length, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.table))

	var userID sql.NullString
	if r.UserID != nil {
		userID = sql.NullString{String: *r.UserID, Valid: true}
	}

	_, err := d.conn.ExecContext(ctx, query,
		r.ResultID, userID, r.WPM, r.Accuracy, r.TimeTaken,
		r.CharactersTyped, r.Mistakes, r.TextLength, d.timeArg(r.Timestamp))
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// RecentResults returns up to limit of the latest inserted results, oldest
// first. An empty userID matches all results.
func (d *DB) RecentResults(ctx context.Context, userID string, limit int) ([]model.Result, error) {
	query := fmt.Sprintf(`
		SELECT result_id, user_id, wpm, accuracy, time_taken, characters_typed, mistakes, text_length, created_at
		FROM %s`, d.table)
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY seq DESC LIMIT ?`
	args = append(args, limit)

	var rows []resultRow
	if err := d.conn.SelectContext(ctx, &rows, d.conn.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}

	out := make([]model.Result, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = row.toModel()
	}
	return out, nil
}

func (d *DB) timeArg(t time.Time) any {
	if d.driver == DriverSQLite {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC()
}
