package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/lookizm/autopress/app_config"
	"github.com/lookizm/autopress/autopublisher"
	"github.com/lookizm/autopress/utils/dotenv"
	Logger "github.com/lookizm/autopress/utils/log"
)

func newPublisher() (*autopublisher.AutoPublisher, error) {
	cfg := app_config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return autopublisher.New(cfg)
}

func runOnce(ctx context.Context, cmd *cli.Command) error {
	publisher, err := newPublisher()
	if err != nil {
		return err
	}
	return publisher.RunOnce(cmd.String("topic"))
}

func runScheduled(ctx context.Context, cmd *cli.Command) error {
	publisher, err := newPublisher()
	if err != nil {
		return err
	}
	if err := publisher.RunScheduled(ctx); err != context.Canceled {
		return err
	}
	return nil
}

func runLoop(ctx context.Context, cmd *cli.Command) error {
	publisher, err := newPublisher()
	if err != nil {
		return err
	}
	if err := publisher.RunLoop(ctx); err != context.Canceled {
		return err
	}
	return nil
}

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		Logger.Log.Fatal("fail to load env : ", err)
	}

	topicFlag := &cli.StringFlag{
		Name:    "topic",
		Aliases: []string{"t"},
		Usage:   "Topic to write about (a suggested one is picked when omitted)",
	}

	cmd := &cli.Command{
		Name:   "autopress",
		Usage:  "Generate a blog post and publish it to WordPress",
		Action: runOnce,
		Flags:  []cli.Flag{topicFlag},
		Commands: []*cli.Command{
			{
				Name:   "once",
				Usage:  "Generate and publish a single post",
				Action: runOnce,
				Flags:  []cli.Flag{topicFlag},
			},
			{
				Name:   "schedule",
				Usage:  "Publish one post per day at POST_TIME",
				Action: runScheduled,
			},
			{
				Name:   "loop",
				Usage:  "Publish posts back to back until interrupted",
				Action: runLoop,
			},
		},
	}

	// interrupts stop the run loops at the next iteration boundary
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		Logger.Log.Errorln("autopress failed:", err)
		os.Exit(1)
	}
}
