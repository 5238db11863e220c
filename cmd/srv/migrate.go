package main

import (
	"github.com/playden-lab/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadDatabase()
	return migration.Migrate(s.ctx)
}
