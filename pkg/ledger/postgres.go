package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"pokerroom-server/pkg/deck"
	"pokerroom-server/pkg/table"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// Open connects to Postgres and verifies the connection
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs the migrations found in migrationsPath
func Migrate(db *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// Postgres stores hands in the `hands` and `hand_payouts` tables
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a service backed by db
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// RecordHand inserts a hand and its payouts
// Recording the same hand twice is not an error.
func (p *Postgres) RecordHand(ctx context.Context, result table.HandResult) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
INSERT INTO hands (hand_id, room_id, hand_number, community, pot, unallocated, by_fold, ended_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.ExecContext(ctx, query,
		result.HandID,
		result.RoomID,
		result.HandNumber,
		deck.CardsToString(result.Community),
		result.Pot,
		result.Unallocated,
		result.ByFold,
		result.EndedAt,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil
		}

		return err
	}

	const payoutQuery = `
INSERT INTO hand_payouts (hand_id, seat_id, name, amount, hand_name)
VALUES ($1, $2, $3, $4, $5)`
	for _, payout := range result.Payouts {
		if _, err := tx.ExecContext(ctx, payoutQuery, result.HandID, payout.SeatID, payout.Name, payout.Amount, payout.HandName); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Hand returns a recorded hand by its ID
func (p *Postgres) Hand(ctx context.Context, handID string) (*table.HandResult, error) {
	const query = `
SELECT hand_id, room_id, hand_number, community, pot, unallocated, by_fold, ended_at
FROM hands
WHERE hand_id = $1`

	var result table.HandResult
	var community string
	row := p.db.QueryRowContext(ctx, query, handID)
	if err := row.Scan(&result.HandID, &result.RoomID, &result.HandNumber, &community, &result.Pot, &result.Unallocated, &result.ByFold, &result.EndedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}

		return nil, err
	}

	cards, err := deck.CardsFromString(community)
	if err != nil {
		return nil, err
	}
	result.Community = cards

	const payoutQuery = `
SELECT seat_id, name, amount, hand_name
FROM hand_payouts
WHERE hand_id = $1
ORDER BY seat_id`
	rows, err := p.db.QueryContext(ctx, payoutQuery, handID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result.Payouts = make([]table.Payout, 0)
	for rows.Next() {
		var payout table.Payout
		if err := rows.Scan(&payout.SeatID, &payout.Name, &payout.Amount, &payout.HandName); err != nil {
			return nil, err
		}

		result.Payouts = append(result.Payouts, payout)
	}

	return &result, rows.Err()
}

// Close closes the database handle
func (p *Postgres) Close() error {
	return p.db.Close()
}
