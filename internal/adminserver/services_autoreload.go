package adminserver

import (
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/uciweb/ddnsadmin/pkg/config"
	"github.com/uciweb/ddnsadmin/pkg/uci"
)

func installServicesAutoReload(cfg *config.Config, reg *uci.Registry, mu *sync.Mutex) (io.Closer, error) {
	if cfg == nil || reg == nil || mu == nil {
		return nil, nil
	}
	if !cfg.Services.AutoReload.Enabled {
		return nil, nil
	}

	dir := strings.TrimSpace(cfg.Services.Dir)
	if dir == "" {
		return nil, nil
	}
	debounce := time.Duration(cfg.Services.AutoReload.DebounceMs) * time.Millisecond

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addWatchRecursive(watcher, dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	triggerCh := make(chan struct{}, 1)

	go func() {
		defer close(doneCh)
		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)
		resetTimer := func() {
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			timerC = timer.C
		}
		runReload := func() {
			mu.Lock()
			res, err := reg.ReloadFromDir(cfg.Services.Dir)
			mu.Unlock()
			if err != nil {
				log.Printf("reload failed (services auto): %v", err)
				return
			}
			log.Printf(
				"reload ok (services auto): services_dir=%q services=%s skipped=%s",
				cfg.Services.Dir,
				namesForLog(res.LoadedServices),
				namesForLog(res.SkippedFiles),
			)
		}

		for {
			select {
			case <-stopCh:
				if timer != nil {
					timer.Stop()
				}
				return
			case <-timerC:
				timerC = nil
				runReload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("services auto-reload watcher error: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create != 0 {
					if fi, statErr := os.Stat(evt.Name); statErr == nil && fi.IsDir() {
						if addErr := addWatchRecursive(watcher, evt.Name); addErr != nil {
							log.Printf("services auto-reload add watch failed: path=%q err=%v", evt.Name, addErr)
						}
					}
				}
				if shouldTriggerServiceReload(evt) {
					select {
					case triggerCh <- struct{}{}:
					default:
					}
				}
			case <-triggerCh:
				resetTimer()
			}
		}
	}()

	log.Printf(
		"services auto-reload enabled: dir=%q debounce_ms=%d",
		dir,
		cfg.Services.AutoReload.DebounceMs,
	)
	return closerFunc(func() error {
		close(stopCh)
		_ = watcher.Close()
		<-doneCh
		return nil
	}), nil
}

func shouldTriggerServiceReload(evt fsnotify.Event) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) == 0 {
		return false
	}
	base := filepath.Base(evt.Name)
	return !strings.HasPrefix(base, ".")
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}

func namesForLog(names []string) string {
	if len(names) == 0 {
		return "<none>"
	}
	return strings.Join(names, ",")
}
