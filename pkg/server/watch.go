package server

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
)

// reloadDelay coalesces the burst of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the document whenever its file changes, until ctx is
// cancelled. It watches the parent directory so that editors that replace
// the file by renaming are handled. Only local file sources can be watched.
func (s *Server) Watch(ctx context.Context) error {
	src, err := content.OpenSource(s.cfg.Source, nil)
	if err != nil {
		return err
	}
	fs, ok := src.(content.FileSource)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "cannot watch %s: not a local file", s.cfg.Source)
	}
	path, err := filepath.Abs(fs.Path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	s.logger.Debug("watching", "path", path)

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(reloadDelay)
		case <-timer.C:
			if err := s.Reload(ctx); err != nil {
				s.logger.Error("reload failed, keeping previous document", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "err", err)
		}
	}
}
