package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lookizm/autopress/app_config"
	"github.com/lookizm/autopress/tracker"
	"github.com/lookizm/autopress/utils/dotenv"
	Logger "github.com/lookizm/autopress/utils/log"
	"github.com/lookizm/autopress/wordpress"
)

func deleteAll(ctx context.Context, cmd *cli.Command) error {
	cfg := app_config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	postTracker := tracker.New(cfg.TrackerFile)
	client, err := wordpress.New(cfg, postTracker, nil)
	if err != nil {
		return err
	}

	deleted, err := client.DeleteAllPosts()
	if err != nil {
		return err
	}
	Logger.Log.Infof("deleted %d post(s) from WordPress", deleted)

	postTracker.Clear()
	Logger.Log.Infoln("cleared local post tracker")
	return nil
}

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		Logger.Log.Fatal("fail to load env : ", err)
	}

	cmd := &cli.Command{
		Name:   "deleteposts",
		Usage:  "Delete every post on the blog and clear the local tracker",
		Action: deleteAll,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		Logger.Log.Errorln("deleteposts failed:", err)
		os.Exit(1)
	}
}
