//go:build e2e

package e2e

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/browser"
	internalcli "github.com/internetqa/internetqa/internal/cli"
	"github.com/internetqa/internetqa/internal/config"
	"github.com/internetqa/internetqa/internal/logging"
	"github.com/internetqa/internetqa/internal/repository"
)

var (
	session *browser.Session
	site    config.SiteConfig
	logger  *zap.Logger
	expect  = playwright.NewPlaywrightAssertions(5000)
	// replica is true when the suite runs against its own in-process server
	replica bool
)

// TestMain starts the replica (unless BASE_URL points elsewhere) and one
// browser shared by all tests. Browsers must be installed first:
// go run github.com/playwright-community/playwright-go/cmd/playwright install chromium
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	var err error
	logger, err = logging.New(config.LoadLogConfig(os.Getenv))
	if err != nil {
		log.Printf("invalid log config: %v", err)
		return 1
	}
	defer logger.Sync()

	site, err = config.LoadSiteConfig(os.Getenv)
	if err != nil {
		log.Printf("invalid site config: %v", err)
		return 1
	}

	if os.Getenv("BASE_URL") == "" {
		listener, server, err := startReplica(site)
		if err != nil {
			log.Printf("failed to start replica: %v", err)
			return 1
		}
		defer server.Close()
		defer listener.Close()
		site.BaseURL = fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
		replica = true
	}

	browserCfg, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		log.Printf("invalid browser config: %v", err)
		return 1
	}
	session, err = browser.Launch(browserCfg, logger)
	if err != nil {
		log.Printf("failed to launch browser: %v", err)
		return 1
	}
	defer session.Close()

	return m.Run()
}

func startReplica(site config.SiteConfig) (net.Listener, *http.Server, error) {
	deps, err := internalcli.BuildServerDependencies(config.ServerConfig{Port: "0"}, site,
		repository.NewMemoryUploadRepository(), "../templates", logger)
	if err != nil {
		return nil, nil, err
	}
	return internalcli.StartServer(deps)
}

// newPage opens a page in a fresh browser context, closed when t ends
func newPage(t *testing.T) *browser.Page {
	t.Helper()
	page, err := session.NewPage()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := page.Close(); err != nil {
			t.Logf("failed to close page: %v", err)
		}
	})
	return page
}
