package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Playden"
	s.app.Usage = "Gaming social platform backend"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path of the toml configuration file",
			EnvVars: []string{"PLAYDEN_CONFIG"},
		},
	}
	s.app.Before = s.loadConfig
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database",
			Category:    "Database",
			Description: `Used to apply every pending database migration.`,
		},
		{
			Action:      s.startAchievement,
			Name:        "achievement",
			Usage:       "Start achievement subscriber",
			Category:    "Worker",
			Description: `Used to unlock achievements from the relation count events of the message queue.`,
		},
	}
}
