package log

import (
	"os"
	"time"

	ddhook "github.com/bin3377/logrus-datadog-hook"
	"github.com/sirupsen/logrus"

	"github.com/lookizm/autopress/utils/dotenv"
)

const (
	datadogUSHost    = "http-intake.logs.datadoghq.com"
	syncFrequencySec = 30
	syncRetry        = 3
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger("autopress")
}

func InitLogger(serviceName string) {
	logger = logrus.New()

	if os.Getenv("AUTOPRESS_ENV") == dotenv.ProdEnv {
		if apiKey := os.Getenv("DATADOG_API_KEY"); apiKey != "" {
			hook := ddhook.NewHook(
				datadogUSHost,
				apiKey,
				syncFrequencySec*time.Second,
				syncRetry,
				logrus.InfoLevel,
				&logrus.JSONFormatter{},
				ddhook.Options{},
			)
			logger.Hooks.Add(hook)
		}
	}

	// Also send log to stderr, without json formatter for better readability
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": serviceName, "is_development": os.Getenv("AUTOPRESS_ENV") != dotenv.ProdEnv},
	)
}
