package migration

import (
	"context"
	"errors"
	"sort"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type migrator func(ctx context.Context) error

// Migrators are applied in the order of their version, every version is
// applied only once per database.
var Migrators = map[int]migrator{
	0: migrate0000,
	1: migrate0001,
	2: migrate0002,
}

// Migrate applies every migrator whose version is greater than the latest
// applied one.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	latest := -1
	var last entity.Migration
	err := xcontext.DB(ctx).Order("version DESC").Take(&last).Error
	if err == nil {
		latest = last.Version
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	versions := make([]int, 0, len(Migrators))
	for version := range Migrators {
		versions = append(versions, version)
	}
	sort.Ints(versions)

	for _, version := range versions {
		if version <= latest {
			continue
		}

		xcontext.Logger(ctx).Infof("Applying migration %04d", version)
		if err := Migrators[version](ctx); err != nil {
			return err
		}

		if err := xcontext.DB(ctx).Create(&entity.Migration{Version: version}).Error; err != nil {
			return err
		}
	}

	return nil
}
