package models

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gammazero/workerpool"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
)

const (
	janitorSweepInterval = 1 * time.Hour
	janitorWorkers       = 4
)

// JanitorModel periodically removes uploaded files that no database row
// references anymore, e.g. leftovers of interrupted requests.
type JanitorModel struct {
	app       *config.AppConfig
	ds        *dbservice.DatabaseService
	fileModel *FileModel

	cancel context.CancelFunc
	done   chan struct{}
}

func NewJanitorModel(app *config.AppConfig, ds *dbservice.DatabaseService, fileModel *FileModel) *JanitorModel {
	if app == nil {
		app = config.GetConfig()
	}
	if ds == nil {
		ds = dbservice.New(app.ORM)
	}
	if fileModel == nil {
		fileModel = NewFileModel(app)
	}

	return &JanitorModel{
		app:       app,
		ds:        ds,
		fileModel: fileModel,
		done:      make(chan struct{}),
	}
}

// Start launches the periodic sweep. Call Shutdown to stop it.
func (m *JanitorModel) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(janitorSweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

func (m *JanitorModel) Shutdown() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

// Sweep walks the upload directory and deletes files older than the
// configured cutoff that nothing in the database points at. Reference
// checks run on a small worker pool so a big directory does not hammer
// the database all at once.
func (m *JanitorModel) Sweep() {
	log := m.app.Logger.WithField("task", "janitor")
	root := m.app.UploadFileSettings.Path
	cutoff := time.Now().Add(-*m.app.UploadFileSettings.OrphanMaxAge)

	wp := workerpool.New(janitorWorkers)
	var removed atomic.Int64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		wp.Submit(func() {
			referenced, err := m.ds.IsFileReferenced(relPath)
			if err != nil {
				log.WithError(err).Warnln("reference check failed for", relPath)
				return
			}
			if referenced {
				return
			}
			if err := m.fileModel.DeleteFile(relPath); err != nil {
				log.WithError(err).Warnln("failed to remove orphan", relPath)
				return
			}
			removed.Add(1)
			log.Infoln("removed orphan file", relPath)
		})
		return nil
	})
	if err != nil {
		log.WithError(err).Errorln("upload directory walk failed")
	}

	wp.StopWait()
	if n := removed.Load(); n > 0 {
		log.Infof("sweep removed %d orphan files", n)
	}
}
