package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tcreator/internal/element"
	"tcreator/internal/filewalker"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch reopens the workspace whenever an element source under root/mod
// changes, and passes each rebuilt workspace to onRefresh. Events are handled
// one at a time. It returns when ctx is cancelled.
func (l *Loader) Watch(ctx context.Context, root, mod string, onRefresh func(*Workspace)) error {
	ws, err := l.Open(root, mod)
	if err != nil {
		return err
	}
	onRefresh(ws)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	modPath := ws.Path()
	if err := watcher.Add(modPath); err != nil {
		return fmt.Errorf("watch mod dir: %w", err)
	}
	for _, kind := range element.Kinds {
		addKindDir(watcher, filepath.Join(modPath, kind.Folder()))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Dir(event.Name) == modPath {
				// A kind folder appearing under the mod starts being watched.
				if event.Op&fsnotify.Create != 0 && isKindFolder(filepath.Base(event.Name)) {
					addKindDir(watcher, event.Name)
					ws, err := l.Open(root, mod)
					if err != nil {
						log.Warn().Err(err).Str("mod", mod).Msg("Refresh failed")
						continue
					}
					onRefresh(ws)
				}
				continue
			}
			if !strings.HasSuffix(event.Name, filewalker.SourceExtension) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Source changed")
			ws, err := l.Open(root, mod)
			if err != nil {
				log.Warn().Err(err).Str("mod", mod).Msg("Refresh failed")
				continue
			}
			onRefresh(ws)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Watcher error")
		}
	}
}

func addKindDir(watcher *fsnotify.Watcher, dir string) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}
	if err := watcher.Add(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Unable to watch folder")
	}
}

func isKindFolder(name string) bool {
	for _, kind := range element.Kinds {
		if kind.Folder() == name {
			return true
		}
	}
	return false
}
