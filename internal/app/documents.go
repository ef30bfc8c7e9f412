package app

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dshills/quicksearch/internal/host"
	"github.com/dshills/quicksearch/internal/watcher"
)

// openFiles opens each file as a buffer. Files that cannot be read are
// reported on the status line; with no files at all a scratch buffer holds
// the help text.
func (a *Application) openFiles(paths []string) error {
	var failed error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			failed = NewOperationError("open", path, err)
			a.log.Warn("%v", failed)
			a.message = failed.Error()
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		id := a.editor.OpenNamed(filepath.Base(path), string(data))
		a.docs = append(a.docs, document{id: id, path: abs})
		a.log.WithField("buffer", id).Info("opened %s", abs)

		if a.watcher != nil {
			if err := a.watcher.Watch(abs); err != nil {
				a.log.Warn("watch %s: %v", abs, err)
			}
		}
	}

	if len(a.docs) > 0 {
		return nil
	}
	if failed != nil {
		return errors.Join(ErrNoFiles, failed)
	}
	id := a.editor.OpenNamed("[scratch]", a.helpText())
	a.docs = append(a.docs, document{id: id})
	return nil
}

// reload replaces a buffer's text with the file's new content. A search
// running on the buffer is dropped, since its anchors no longer apply.
func (a *Application) reload(ev watcher.Event) {
	for _, doc := range a.docs {
		if doc.path != ev.Path {
			continue
		}
		if ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) {
			if _, err := os.Stat(doc.path); err != nil {
				a.message = NewOperationError("reload", doc.path, err).Error()
				return
			}
		}
		data, err := os.ReadFile(doc.path)
		if err != nil {
			a.message = NewOperationError("reload", doc.path, err).Error()
			a.log.Warn("%s", a.message)
			return
		}
		a.dropSearch(doc.id)
		if err := a.editor.SetText(doc.id, string(data)); err != nil {
			a.log.Error("reload %s: %v", doc.path, err)
			return
		}
		a.message = "reloaded " + filepath.Base(doc.path)
		a.log.WithField("buffer", doc.id).Info("reloaded %s", doc.path)
		return
	}
}

func (a *Application) dropSearch(id host.BufferID) {
	if !a.reg.Active(id) {
		return
	}
	a.plugin.Close(id)
	_ = a.editor.SetTitle(id, "")
}
