// Package watcher notices when the address book file is changed by another
// process, so an open shell can reload it.
//
// The parent directory is watched with fsnotify and events are filtered down
// to the book file itself. Watching the directory rather than the file keeps
// working across atomic rewrites, which replace the file's inode. Where
// fsnotify is unavailable the watcher falls back to polling the file's size
// and modification time.
//
// Events are debounced so a burst of writes yields one notification.
//
// Usage:
//
//	w, err := watcher.New("contacts.tsv", watcher.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	g.Go(func() error { return w.Run(ctx) })
//
//	for event := range w.Events() {
//	    // reload the book
//	}
package watcher
