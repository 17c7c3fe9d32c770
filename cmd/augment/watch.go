package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce is how long watch waits for further events on a file before
// recompiling it.
const debounce = 100 * time.Millisecond

// watch recompiles an input whenever it changes, until ctx is done. It
// observes the directories of the inputs, so files replaced by rename stay
// tracked.
func (c *compiler) watch(ctx context.Context, inputs []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]string, len(inputs))
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		watched[abs] = in
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", in, err)
		}
	}
	c.log.Info("watching model files", zap.Int("files", len(inputs)))

	var (
		pending = make(map[string]bool)
		timer   = time.NewTimer(debounce)
	)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.log.Error("watch error", zap.Error(err))
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			in, tracked := watched[filepath.Clean(ev.Name)]
			if !tracked || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			pending[in] = true
			timer.Reset(debounce)
		case <-timer.C:
			for in := range pending {
				delete(pending, in)
				if err := c.one(ctx, in); err != nil {
					c.log.Error("compile failed", zap.Error(err))
				}
			}
		}
	}
}
