package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/eringen/docsite"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site and watch for content changes",
	Long: `Starts the docsite server. Content and static directories are
watched; on change the page cache is invalidated so the next request
re-renders from disk. Set DOCSITE_ADMIN_PASSWORD (and
DOCSITE_SESSION_SECRET) to enable the admin editor at /admin/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := docsite.New(siteCfg)
		defer app.Close()

		stop, err := watchContent(app, siteCfg.ContentDir, siteCfg.StaticDir)
		if err != nil {
			log.Printf("file watcher disabled: %v", err)
		} else {
			defer stop()
		}

		log.Printf("serving %s on %s", siteCfg.Title, siteCfg.Addr)
		return app.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// watchContent invalidates the app's page cache when any watched directory
// changes. Events are debounced so a burst of editor writes triggers one
// reload.
func watchContent(app *docsite.App, dirs ...string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	const debounce = 500 * time.Millisecond
	go func() {
		var timer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				// New subdirectories are not watched automatically.
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					log.Printf("content changed, reloading")
					app.Invalidate()
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watcher error: %v", err)
			}
		}
	}()

	for _, root := range dirs {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if werr := watcher.Add(path); werr != nil {
					log.Printf("watch %s: %v", path, werr)
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("walking %s: %v", root, err)
		}
	}

	return func() { watcher.Close() }, nil
}
