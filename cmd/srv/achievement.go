package main

import (
	"os/signal"
	"syscall"

	"github.com/playden-lab/backend/pkg/kafka"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startAchievement(*cli.Context) error {
	s.loadDatabase()
	s.loadRepos()
	s.loadAchievementManager()

	cfg := xcontext.Configs(s.ctx)
	subscriber, err := kafka.NewSubscriber(
		cfg.Kafka.GroupID,
		[]string{cfg.Kafka.Addr},
		[]string{cfg.Achievement.Topic},
		s.achievementManager.Subscribe,
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	xcontext.Logger(s.ctx).Infof("Subscribing to %s", cfg.Achievement.Topic)
	subscriber.Subscribe(ctx)

	return subscriber.Stop(s.ctx)
}
