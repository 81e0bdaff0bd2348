package invariants

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Profile controls the baseline reporting-logger configuration.
type Profile string

const (
	ProfileProduction  Profile = "production"
	ProfileStaging     Profile = "staging"
	ProfileDevelopment Profile = "development"
	ProfileLocal       Profile = "local"
)

// ReportLoggerConfig contains the reporting-logger initialization inputs.
type ReportLoggerConfig struct {
	// Profile selects the baseline zap configuration.
	Profile Profile

	// Level overrides the profile's default level when non-empty.
	Level string

	// ScopeName names the instrumentation scope for the OpenTelemetry log
	// bridge.
	ScopeName string
}

func (c ReportLoggerConfig) validate() error {
	if c.ScopeName == "" {
		return fmt.Errorf("ScopeName is required")
	}

	switch c.Profile {
	case ProfileProduction, ProfileStaging, ProfileDevelopment, ProfileLocal:
		return nil
	default:
		return fmt.Errorf("invalid profile %q", c.Profile)
	}
}

// NewReportLogger builds the structured logger used for Config.ReportLogger:
// JSON-encoded zap with an OpenTelemetry log-bridge tee, profiled for the
// given environment. Applications that already run a zap logger can pass
// their own instead; this constructor exists so the reporting channel is one
// line to wire.
func NewReportLogger(cfg ReportLoggerConfig) (*zap.Logger, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid report logger config: %w", err)
	}

	base := baseConfigForProfile(cfg.Profile)

	if lvl := strings.TrimSpace(cfg.Level); lvl != "" {
		var parsed zapcore.Level
		if err := parsed.Set(lvl); err != nil {
			return nil, fmt.Errorf("invalid level %q: %w", cfg.Level, err)
		}

		base.Level = zap.NewAtomicLevelAt(parsed)
	}

	built, err := base.Build(
		zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelzap.NewCore(cfg.ScopeName))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build report logger: %w", err)
	}

	return built, nil
}

// baseConfigForProfile returns the profile's zap baseline, including its
// default level: debug for the interactive profiles, info otherwise. An
// explicit ReportLoggerConfig.Level overrides it afterward.
func baseConfigForProfile(profile Profile) zap.Config {
	interactive := profile == ProfileDevelopment || profile == ProfileLocal

	var cfg zap.Config
	if interactive {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	return cfg
}
