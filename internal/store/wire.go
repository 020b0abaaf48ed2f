package store

import (
	"encoding/json"
	"fmt"
	"os"

	"driftboard/internal/model"
	"driftboard/internal/tree"
)

// loadWireBoard decodes the nested JSON board shape, tolerating data written
// by older or sloppier producers: an absent subtasks array becomes an empty
// list and absent depth/parentId fields are repaired by tree.Normalize
// before the board is used.
func loadWireBoard(b []byte) (Board, error) {
	var board Board
	if err := json.Unmarshal(b, &board); err != nil {
		// Oldest boards were a bare task array without the version envelope.
		var tasks []model.Task
		if err2 := json.Unmarshal(b, &tasks); err2 != nil {
			return Board{}, fmt.Errorf("decode board: %w", err)
		}
		board = Board{Tasks: tasks}
	}
	if board.Version == 0 {
		board.Version = 1
	}
	board.Tasks = tree.Normalize(board.Tasks)
	return board, nil
}

// ReadBoardJSON reads and repairs a nested-JSON board file.
func ReadBoardJSON(path string) (Board, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Board{}, err
	}
	return loadWireBoard(b)
}

// WriteBoardJSON writes the nested-JSON wire form of a board.
func WriteBoardJSON(path string, board *Board) error {
	b, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
