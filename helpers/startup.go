package helpers

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/factory"
)

// PrepareServer opens the database and redis connections and stores
// them on the config.
func PrepareServer(ctx context.Context, appCnf *config.AppConfig) error {
	// orm
	err := factory.NewDatabaseConnection(ctx, appCnf)
	if err != nil {
		return err
	}

	// redis
	return factory.NewRedisConnection(ctx, appCnf)
}

func ReadYamlConfigFile(filename string) (*config.AppConfig, error) {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	appCnf := new(config.AppConfig)
	err = yaml.Unmarshal(yamlFile, &appCnf)
	if err != nil {
		return nil, err
	}

	// get current working dir
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	// set the root path
	appCnf.RootWorkingDir = wd

	return appCnf, nil
}
