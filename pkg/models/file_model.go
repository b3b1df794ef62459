package models

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type FileModel struct {
	app *config.AppConfig
}

func NewFileModel(app *config.AppConfig) *FileModel {
	if app == nil {
		app = config.GetConfig()
	}

	return &FileModel{
		app: app,
	}
}

// SaveUpload validates size and content type and writes the multipart
// file under uploads/<resource>/user-<id>/<sub>/. The stored name is a
// fresh uuid with the original extension, so re-uploads never clash.
// Returns the relative path to persist.
func (m *FileModel) SaveUpload(fh *multipart.FileHeader, resource string, userId uint64, sub string) (string, error) {
	maxBytes := int64(m.app.UploadFileSettings.MaxSize * 1024 * 1024)
	if fh.Size > maxBytes {
		return "", fmt.Errorf("file is too big, max allowed %dMB", m.app.UploadFileSettings.MaxSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err = m.detectMimeTypeForValidation(src); err != nil {
		return "", err
	}
	if _, err = src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	relPath := utils.UploadRelPath(resource, userId, sub, name)
	absPath := m.AbsPath(relPath)

	if err = os.MkdirAll(filepath.Dir(absPath), os.ModePerm); err != nil {
		return "", err
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		// do not leave a truncated file behind
		_ = os.Remove(absPath)
		return "", err
	}

	return relPath, nil
}

// DeleteFile removes a stored file. A missing file is not an error.
func (m *FileModel) DeleteFile(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(m.AbsPath(relPath))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (m *FileModel) AbsPath(relPath string) string {
	return filepath.Join(m.app.UploadFileSettings.Path, relPath)
}

// PublicUrl formats a stored relative path into the absolute URL the
// file is served from.
func (m *FileModel) PublicUrl(relPath string) string {
	return utils.PublicFileUrl(m.app.Client.BaseUrl, relPath)
}

func (m *FileModel) detectMimeTypeForValidation(r io.Reader) error {
	allowed := m.app.UploadFileSettings.AllowedTypes
	if len(allowed) == 0 {
		allowed = []string{"image/jpeg", "image/png"}
	}

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return err
	}

	for _, a := range allowed {
		if mtype.Is(a) {
			return nil
		}
	}
	return fmt.Errorf("file type %s is not allowed", mtype.String())
}
