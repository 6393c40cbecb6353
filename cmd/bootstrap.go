package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nutririsk/assessment"
	"nutririsk/config"
	"nutririsk/logging"
	"nutririsk/ml"
	"nutririsk/predictor"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flagValue, _ := cmd.Flags().GetString("config")
	return config.Load(config.ResolvePath(flagValue))
}

// loadClassifier loads the artifact once. Failure is reported as
// assessment.ErrModelUnavailable so callers abort startup.
func loadClassifier(cfg config.ModelConfig, logger *zap.Logger) (ml.Classifier, error) {
	model, err := ml.LoadModel(cfg.Type, cfg.Path,
		ml.WithFeatureCount(assessment.FeatureCount),
		ml.WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", assessment.ErrModelUnavailable, err)
	}
	logger.Info("model loaded", zap.String("type", cfg.Type), zap.String("path", cfg.Path))
	return model, nil
}

type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	predictor *predictor.Predictor
}

func bootstrap(cmd *cobra.Command, recorder predictor.Recorder) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log)

	model, err := loadClassifier(cfg.Model, logger)
	if err != nil {
		logger.Error("cannot start without a model", zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}

	p, err := predictor.New(model, predictor.Options{
		CacheSize: cfg.Cache.Size,
		Logger:    logger.Named("predictor"),
		Recorder:  recorder,
	})
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, predictor: p}, nil
}
