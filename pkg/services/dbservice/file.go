package dbservice

import (
	"golang.org/x/sync/errgroup"

	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
)

// IsFileReferenced reports whether any row still points at the stored
// relative path. Checked against every column that persists an upload.
func (s *DatabaseService) IsFileReferenced(relPath string) (bool, error) {
	if relPath == "" {
		return false, nil
	}

	counts := make([]int64, 3)

	var g errgroup.Group
	g.Go(func() error {
		return s.db.Model(&dbmodels.Cctv{}).Where("polygon_img = ?", relPath).Count(&counts[0]).Error
	})
	g.Go(func() error {
		return s.db.Model(&dbmodels.ActivityMonitoring{}).Where("image = ?", relPath).Count(&counts[1]).Error
	})
	g.Go(func() error {
		return s.db.Model(&dbmodels.WeaponDetection{}).Where("image = ?", relPath).Count(&counts[2]).Error
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	for _, c := range counts {
		if c > 0 {
			return true, nil
		}
	}
	return false, nil
}
