package postgres

import (
	"database/sql"

	"userdict/internal/domain"
)

// WordRepo implements repository.WordStore
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

// FetchByLocale returns all words whose locale is unset or equals locale
func (r *WordRepo) FetchByLocale(locale string) ([]domain.Word, error) {
	query := `
		SELECT word, frequency
		FROM user_words
		WHERE locale IS NULL OR locale = $1
	`
	rows, err := r.db.Query(query, locale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.Word, &w.Frequency); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// Find returns the first record (lowest id) matching word and
// (locale unset or equal), or nil when no record exists
func (r *WordRepo) Find(word, locale string) (*domain.Word, error) {
	var w domain.Word
	var loc sql.NullString
	query := `
		SELECT id, frequency, locale
		FROM user_words
		WHERE word = $1 AND (locale IS NULL OR locale = $2)
		ORDER BY id
		LIMIT 1
	`
	err := r.db.QueryRow(query, word, locale).Scan(&w.ID, &w.Frequency, &loc)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	w.Word = word
	if loc.Valid {
		w.Locale = &loc.String
	}

	return &w, nil
}

// Insert stores a new record and returns its identifier
func (r *WordRepo) Insert(word string, frequency int, locale string, appID int) (int64, error) {
	query := `
		INSERT INTO user_words (word, frequency, locale, app_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(query, word, frequency, locale, appID).Scan(&id)
	return id, err
}

// UpdateFrequency sets the frequency of an existing record
func (r *WordRepo) UpdateFrequency(id int64, frequency int) error {
	query := `
		UPDATE user_words
		SET frequency = $2
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, frequency)
	return err
}

// Ping reports whether the store is reachable
func (r *WordRepo) Ping() error {
	return r.db.Ping()
}
