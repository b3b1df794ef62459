package helpers

import (
	"github.com/sirupsen/logrus"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
)

func HandleCloseConnections() error {
	if config.GetConfig() == nil {
		return nil
	}

	// handle to close DB connection
	if orm := config.GetConfig().ORM; orm != nil {
		if db, err := orm.DB(); err == nil {
			_ = db.Close()
		}
	}

	// close redis
	if rds := config.GetConfig().RDS; rds != nil {
		_ = rds.Close()
	}

	// close logger
	logrus.Exit(0)

	return nil
}
