package store

import (
	"strings"
	"time"
)

// AddUserWord accepts a word into the user dictionary. Adding an existing
// word is a no-op.
func (db *DB) AddUserWord(word, language string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil
	}
	if language == "" {
		language = "en-US"
	}
	_, err := db.conn.Exec(
		`INSERT INTO user_words (word, language, added_at) VALUES (?, ?, ?)
		ON CONFLICT(word) DO NOTHING`,
		word, language, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// RemoveUserWord drops a word from the user dictionary.
func (db *DB) RemoveUserWord(word string) error {
	_, err := db.conn.Exec("DELETE FROM user_words WHERE word = ?", strings.ToLower(strings.TrimSpace(word)))
	return err
}

// UserWords returns all accepted words for the given language, sorted.
func (db *DB) UserWords(language string) ([]string, error) {
	rows, err := db.conn.Query(
		"SELECT word FROM user_words WHERE language = ? ORDER BY word", language,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}
