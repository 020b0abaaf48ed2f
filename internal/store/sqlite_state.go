package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "modernc.org/sqlite"

	"driftboard/internal/model"
	"driftboard/internal/tree"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.StatePath())
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS board_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			parent_id TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			payload TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id, position)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// LoadSQLite loads the board from index.sqlite. If the SQLite state is empty
// but a board.json exists, it imports board.json into SQLite once
// (preserving existing data) and then loads from SQLite.
func (s Store) LoadSQLite(ctx context.Context) (*Board, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return nil, err
	}

	var taskRows int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&taskRows); err != nil {
		return nil, err
	}
	if taskRows == 0 {
		// One-time import from board.json if present.
		if b, err := os.ReadFile(s.boardPath()); err == nil && len(b) > 0 {
			legacy, err := loadWireBoard(b)
			if err != nil {
				return nil, err
			}
			if err := s.SaveSQLite(ctx, &legacy); err != nil {
				return nil, err
			}
		}
	}

	return loadBoardFromSQLite(ctx, db)
}

// SaveSQLite persists the board into index.sqlite with a replace-all
// transaction. A save whose content signature matches the stored one is
// skipped entirely.
func (s Store) SaveSQLite(ctx context.Context, b *Board) error {
	if b == nil {
		return errors.New("nil board")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return err
	}

	sig := b.Signature()
	var stored string
	err = db.QueryRowContext(ctx, `SELECT v FROM board_meta WHERE k = ?`, "signature").Scan(&stored)
	if err == nil && stored == formatSignature(sig) {
		return nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO board_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(b.Version)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO board_meta(k, v) VALUES(?, ?)`, "signature", formatSignature(sig)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return err
	}
	if err := insertTaskRows(ctx, tx, b.Tasks, ""); err != nil {
		return err
	}
	return tx.Commit()
}

func insertTaskRows(ctx context.Context, tx *sql.Tx, tasks []model.Task, parentID string) error {
	for i := range tasks {
		row := tasks[i]
		row.Subtasks = nil // children live in their own rows
		payload, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks(id, parent_id, position, payload) VALUES(?, ?, ?, ?)`,
			tasks[i].ID, parentID, i, string(payload)); err != nil {
			return err
		}
		if err := insertTaskRows(ctx, tx, tasks[i].Subtasks, tasks[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func loadBoardFromSQLite(ctx context.Context, db *sql.DB) (*Board, error) {
	board := &Board{Version: 1}

	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM board_meta WHERE k = ?`, "version").Scan(&v)
	if err == nil {
		if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
			board.Version = n
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, parent_id, payload FROM tasks ORDER BY parent_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := map[string][]model.Task{}
	for rows.Next() {
		var id, parentID, payload string
		if err := rows.Scan(&id, &parentID, &payload); err != nil {
			return nil, err
		}
		var t model.Task
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, fmt.Errorf("decode task %s: %w", id, err)
		}
		children[parentID] = append(children[parentID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var attach func(parentID string) []model.Task
	attach = func(parentID string) []model.Task {
		sibs := children[parentID]
		out := make([]model.Task, len(sibs))
		for i := range sibs {
			out[i] = sibs[i]
			out[i].Subtasks = attach(sibs[i].ID)
		}
		return out
	}
	board.Tasks = tree.Normalize(attach(""))
	return board, nil
}
