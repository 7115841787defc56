// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package users persists user accounts and saved searches in SQLite.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/method-recommender/pkg/types"
)

const dbFile = "users.db"

const defaultListLimit = 10

// ErrNotFound marks lookups for a user id that does not exist.
var ErrNotFound = errors.New("user not found")

// Store manages the users SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at cfg.DataDir/users.db and
// creates the schema if it does not exist.
func NewStore(cfg types.UserStoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS saved_searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			problem_text TEXT,
			phase_iri TEXT,
			cluster_iris TEXT,
			paradigm_iri TEXT,
			max_results INTEGER,
			task_iri TEXT,
			dataset_type_iri TEXT,
			conditions TEXT,
			performance_prefs TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_searches_user
			ON saved_searches(user_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// LoginOrCreate upserts a user keyed on the unique username and returns
// the stored record. The operation is idempotent: repeated logins with
// the same username return the same id.
func (s *Store) LoginOrCreate(ctx context.Context, username string) (types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return types.User{}, fmt.Errorf("%w: username must not be empty", types.ErrInvalid)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, created_at) VALUES (?, ?)
		 ON CONFLICT(username) DO NOTHING`,
		username, now,
	)
	if err != nil {
		return types.User{}, fmt.Errorf("upserting user: %w", err)
	}

	var (
		user       types.User
		createdRaw string
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM users WHERE username = ?`, username,
	).Scan(&user.ID, &user.Username, &createdRaw)
	if err != nil {
		return types.User{}, fmt.Errorf("loading user: %w", err)
	}
	user.CreatedAt = parseStoredTime(createdRaw)
	return user, nil
}

// SaveSearch persists a request snapshot for userID and returns the
// stored record. Unknown user ids fail with ErrNotFound.
func (s *Store) SaveSearch(ctx context.Context, userID int64, req types.RecommendationRequest) (types.SavedSearch, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return types.SavedSearch{}, err
	}

	clustersJSON, _ := json.Marshal(req.ClusterIRIs)
	conditionsJSON, _ := json.Marshal(req.Conditions)
	prefsJSON, _ := json.Marshal(req.PerformancePrefs)
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_searches
			(user_id, problem_text, phase_iri, cluster_iris, paradigm_iri,
			 max_results, task_iri, dataset_type_iri, conditions,
			 performance_prefs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, req.ProblemText, req.PhaseIRI, string(clustersJSON),
		req.ParadigmIRI, req.MaxResults, req.TaskIRI, req.DatasetTypeIRI,
		string(conditionsJSON), string(prefsJSON), now,
	)
	if err != nil {
		return types.SavedSearch{}, fmt.Errorf("inserting saved search: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return types.SavedSearch{}, fmt.Errorf("reading saved search id: %w", err)
	}

	return types.SavedSearch{
		ID:                    id,
		UserID:                userID,
		CreatedAt:             parseStoredTime(now),
		RecommendationRequest: req,
	}, nil
}

// ListSavedSearches returns up to limit snapshots for userID, newest
// first. A non-positive limit uses the default (10). Unknown user ids
// fail with ErrNotFound.
func (s *Store) ListSavedSearches(ctx context.Context, userID int64, limit int) ([]types.SavedSearch, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, problem_text, phase_iri, cluster_iris,
			paradigm_iri, max_results, task_iri, dataset_type_iri,
			conditions, performance_prefs, created_at
		 FROM saved_searches
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying saved searches: %w", err)
	}
	defer rows.Close()

	searches := make([]types.SavedSearch, 0, limit)
	for rows.Next() {
		var (
			ss           types.SavedSearch
			problemText  sql.NullString
			phaseIRI     sql.NullString
			clustersJSON sql.NullString
			paradigmIRI  sql.NullString
			maxResults   sql.NullInt64
			taskIRI      sql.NullString
			datasetIRI   sql.NullString
			condJSON     sql.NullString
			prefsJSON    sql.NullString
			createdRaw   string
		)
		if err := rows.Scan(
			&ss.ID, &ss.UserID, &problemText, &phaseIRI, &clustersJSON,
			&paradigmIRI, &maxResults, &taskIRI, &datasetIRI,
			&condJSON, &prefsJSON, &createdRaw,
		); err != nil {
			return nil, fmt.Errorf("scanning saved search: %w", err)
		}

		ss.ProblemText = problemText.String
		ss.PhaseIRI = phaseIRI.String
		ss.ParadigmIRI = paradigmIRI.String
		ss.MaxResults = int(maxResults.Int64)
		ss.TaskIRI = taskIRI.String
		ss.DatasetTypeIRI = datasetIRI.String
		ss.CreatedAt = parseStoredTime(createdRaw)

		if clustersJSON.Valid {
			json.Unmarshal([]byte(clustersJSON.String), &ss.ClusterIRIs)
		}
		if condJSON.Valid {
			json.Unmarshal([]byte(condJSON.String), &ss.Conditions)
		}
		if prefsJSON.Valid {
			json.Unmarshal([]byte(prefsJSON.String), &ss.PerformancePrefs)
		}

		searches = append(searches, ss)
	}
	return searches, rows.Err()
}

func (s *Store) userExists(ctx context.Context, userID int64) error {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE id = ?`, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: id %d", ErrNotFound, userID)
	}
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	return nil
}

func parseStoredTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
