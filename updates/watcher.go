package updates

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the shared channel and triggers a reload when an event
// names the conversation currently on screen. Events for other ids are
// ignored; malformed envelopes are logged and dropped.
type Watcher struct {
	dir     string
	current func() string       // chat id currently displayed, "" when none
	reload  func(chatID string) // re-fetch trigger

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewWatcher(dataDir string, current func() string, reload func(chatID string)) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		dir:     filepath.Join(dataDir, "events"),
		current: current,
		reload:  reload,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher

	go w.eventLoop()
	slog.Debug("update watcher started", "dir", w.dir)
	return nil
}

func (w *Watcher) Stop() {
	w.cancel()
	if w.watcher != nil {
		w.watcher.Close()
	}
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != EventKey {
				continue
			}
			// The envelope is readable on create/write; the scheduled
			// removal carries no payload and needs no reaction.
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
				continue
			}
			w.handle(ev.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("update watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Already removed; the write was not for us to see
		return
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Error("malformed update event", "error", err)
		return
	}
	if ev.Type != EventConversationUpdated {
		return
	}

	id := w.current()
	if id == "" || ev.ConversationID != id {
		return
	}
	w.reload(id)
}
