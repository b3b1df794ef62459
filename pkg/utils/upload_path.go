package utils

import (
	"fmt"
	"path"
	"strings"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
)

// UploadRelPath builds the relative storage path of an uploaded file:
// uploads/<resource>/user-<id>/<sub>/<name>.
func UploadRelPath(resource string, userId uint64, sub, name string) string {
	return path.Join("uploads", resource, fmt.Sprintf("user-%d", userId), sub, name)
}

// PublicFileUrl turns a stored relative path into the absolute URL it
// is served from. Empty paths stay empty.
func PublicFileUrl(baseUrl, relPath string) string {
	if relPath == "" {
		return ""
	}
	return strings.TrimSuffix(baseUrl, "/") + config.StaticRoutePrefix + "/" + strings.TrimPrefix(relPath, "/")
}
