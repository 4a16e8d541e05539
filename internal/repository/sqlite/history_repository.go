package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/models"
	"github.com/anshulm/prepdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type historyStore struct {
	db *sql.DB
}

// NewHistoryStore creates a HistoryStore backed by SQLite.
func NewHistoryStore(db *sql.DB) repository.HistoryStore {
	return &historyStore{db: db}
}

func (r *historyStore) Insert(ctx context.Context, entry models.ReviewLog) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("history_store")
	log.Debug("inserting review log: card_id=%s, quality=%d", entry.CardID, entry.Quality)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_log (card_id, quality, reviewed_at)
VALUES (?, ?, ?)
`, entry.CardID, entry.Quality, entry.ReviewedAt)
	if err != nil {
		log.Error("failed to insert review log: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *historyStore) List(ctx context.Context, filter models.ReviewLogFilter) ([]models.ReviewLog, error) {
	log := logger.FromContext(ctx).WithPrefix("history_store")

	query := sqlBuilder.
		Select("id", "card_id", "quality", "reviewed_at").
		From("review_log").
		OrderBy("reviewed_at DESC", "id DESC")

	if filter.CardID != "" {
		query = query.Where(squirrel.Eq{"card_id": filter.CardID})
	}
	if filter.MinQuality != nil {
		query = query.Where(squirrel.GtOrEq{"quality": *filter.MinQuality})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"reviewed_at": *filter.Since})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build review log query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query review log: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReviewLog
	for rows.Next() {
		var e models.ReviewLog
		if err := rows.Scan(&e.ID, &e.CardID, &e.Quality, &e.ReviewedAt); err != nil {
			log.Error("failed to scan review log row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d review log entries", len(entries))
	return entries, rows.Err()
}
