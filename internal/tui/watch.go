package tui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// externalChangeMsg reports that another process touched the board state
// file. The model reloads only when the content signature actually changed.
type externalChangeMsg struct{}

type boardWatcher struct {
	w      *fsnotify.Watcher
	events chan struct{}
}

// newBoardWatcher watches the board directory and emits a debounced signal
// whenever the state file changes. The directory (not the file) is watched
// because SQLite replaces files on checkpoint.
func newBoardWatcher(dir, stateFile string) (*boardWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	events := make(chan struct{}, 1)
	go func() {
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(events)
					return
				}
				if filepath.Base(ev.Name) != stateFile {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// Debounce bursts of writes into one reload.
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(200*time.Millisecond, func() {
					select {
					case events <- struct{}{}:
					default:
					}
				})
			case _, ok := <-w.Errors:
				if !ok {
					close(events)
					return
				}
			}
		}
	}()

	return &boardWatcher{w: w, events: events}, nil
}

func (bw *boardWatcher) Close() error {
	return bw.w.Close()
}

// waitForChange is a bubbletea command that blocks until the next external
// change; the update loop re-issues it after handling each message.
func (bw *boardWatcher) waitForChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-bw.events; !ok {
			return nil
		}
		return externalChangeMsg{}
	}
}
