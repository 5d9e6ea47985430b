package cli

import (
	"go.uber.org/zap"

	"github.com/abdidvp/usedirective/internal/adapters/outbound/cache"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/config"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/parser"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/scanner"
	"github.com/abdidvp/usedirective/internal/application"
)

func newLintService(logger *zap.Logger) *application.LintService {
	return application.NewLintService(
		scanner.New(),
		parser.New(),
		config.New(),
		cache.New(),
		gitinfo.New(),
		logger,
	)
}

func newFixService(logger *zap.Logger) *application.FixService {
	return application.NewFixService(
		scanner.New(),
		parser.New(),
		config.New(),
		cache.New(),
		gitinfo.New(),
		logger,
	)
}
