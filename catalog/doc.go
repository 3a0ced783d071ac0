// Package catalog loads a directory of level files and keeps it current.
//
// Every file with the level extension (default ".bff") under the directory
// is parsed. A broken file does not stop the others from loading; its error
// is kept on its Entry.
//
//	c := catalog.New("levels", catalog.WithLogger(logger))
//	if err := c.Load(); err != nil {
//	    return err
//	}
//	for _, name := range c.Names() {
//	    entry, _ := c.Get(name)
//	    ...
//	}
//
// Watch follows the directory with fsnotify, falling back to polling when
// fsnotify is unavailable, and reparses files as they change:
//
//	for ev := range c.Watch(ctx) {
//	    log.Println(ev.Op, ev.Name, ev.Err)
//	}
package catalog
