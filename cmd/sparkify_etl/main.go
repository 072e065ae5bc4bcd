package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/sirupsen/logrus"

	"sparkify_etl/internal/config"
	"sparkify_etl/internal/engine"
	"sparkify_etl/internal/pipeline"
	"sparkify_etl/internal/storage"
)

const configPath = "dl.yaml"

func main() {
	logger := logrus.New()
	if err := run(logger); err != nil {
		logger.Fatalf("Pipeline failed: %s", err)
	}
	logger.Info("ETL pipeline completed successfully!")
}

func run(logger *logrus.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	logger.SetLevel(level)

	logger.WithFields(logrus.Fields{
		"input":   cfg.Input,
		"output":  cfg.Output,
		"workers": cfg.Workers,
	}).Info("Starting ETL pipeline")

	var sess *session.Session
	if config.IsS3(cfg.Input) || config.IsS3(cfg.Output) {
		if sess, err = storage.NewAWSSession(cfg.AWS); err != nil {
			return err
		}
	}
	input, err := storage.Open(cfg.Input, sess)
	if err != nil {
		return err
	}
	output, err := storage.Open(cfg.Output, sess)
	if err != nil {
		return err
	}

	s, err := engine.NewSession(engine.WithWorkers(cfg.Workers), engine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.WithError(err).Warn("Failed to clean up engine session")
		}
	}()

	return pipeline.Run(context.Background(), s, input, output)
}
