package insights

import (
	"context"
	"database/sql"
	"fmt"
)

const selectTipsSQL = `SELECT locale_key, tip FROM local_tips ORDER BY position, locale_key`

// PostgresSource reads tips from the local_tips table; position fixes the match order.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Load(ctx context.Context) (TipTable, error) {
	rows, err := s.db.QueryContext(ctx, selectTipsSQL)
	if err != nil {
		return nil, fmt.Errorf("query local_tips: %w", err)
	}
	defer rows.Close()

	var table TipTable
	for rows.Next() {
		var tip Tip
		if err := rows.Scan(&tip.Key, &tip.Text); err != nil {
			return nil, fmt.Errorf("scan local_tips: %w", err)
		}
		table = append(table, tip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate local_tips: %w", err)
	}
	return table, nil
}
