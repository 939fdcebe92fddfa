package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"email-unsubscriber/internal/logging"
	"email-unsubscriber/internal/models"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

var activeRodSessions atomic.Int32

// Unsubscribe pages rarely agree on markup. The control probe matches
// anything clickable whose text promises to unsubscribe; the confirmation
// probe looks for the wording senders put on the goodbye page.
const (
	controlSelector     = `button, input[type=submit], a`
	controlPattern      = `/unsubscribe|opt[ -]?out|remove me/i`
	confirmationPattern = `/unsubscribed|no longer receive|removed from|sorry to see you go/i`
)

// RodAgent walks unsubscribe pages with a headless browser, one fresh
// browser and profile per attempt.
type RodAgent struct {
	headless bool
	timeout  time.Duration
}

// NewRodAgent creates a new RodAgent. The timeout bounds one whole attempt,
// from navigation to the confirmation probe.
func NewRodAgent(headless bool, timeout time.Duration) *RodAgent {
	return &RodAgent{
		headless: headless,
		timeout:  timeout,
	}
}

// AttemptUnsubscribe opens the link and tries to complete the unsubscribe
// flow. Page-level failures come back as errors, never as panics, so one bad
// page cannot take down a batch.
func (ra *RodAgent) AttemptUnsubscribe(link, traceID string) (models.AgentResult, error) {
	activeRodSessions.Add(1)
	defer activeRodSessions.Add(-1)

	locallog := logging.Log.WithField("trace_id", traceID)
	locallog.Info("Open unsubscribe page with rod: ", link)

	tmpDir, err := os.MkdirTemp("", "rod-unsub-*")
	if err != nil {
		locallog.WithError(err).Error("failed to create temp user data dir")
		return models.ResultFailed, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			locallog.WithError(err).Warn("failed to remove temp user data dir")
		}
	}()

	result := models.ResultFailed
	err = rod.Try(func() {
		u := launcher.New().
			Headless(ra.headless).
			NoSandbox(true).
			UserDataDir(tmpDir).
			MustLaunch()

		browser := rod.New().ControlURL(u).Timeout(ra.timeout).MustConnect()
		defer func() { _ = browser.Close() }()

		page := browser.MustPage(link)
		defer func() { _ = page.Close() }()

		page.MustWaitLoad()

		// Try to accept cookie banner if present
		if cookieBtn, err := page.Timeout(5 * time.Second).Element("#onetrust-accept-btn-handler"); err == nil {
			locallog.Info("Cookie banner detected, accepting")
			cookieBtn.MustClick()
		}

		// Some endpoints complete on the initial GET already.
		if ra.confirmed(page) {
			locallog.Info("Page already confirms the unsubscribe")
			result = models.ResultSuccess
			return
		}

		control, err := page.Timeout(10 * time.Second).ElementR(controlSelector, controlPattern)
		if err != nil {
			locallog.Warn("No unsubscribe control found on page")
			return
		}

		control.MustClick()
		page.MustWaitLoad()

		if ra.confirmed(page) {
			locallog.Info("Unsubscribe confirmed")
			result = models.ResultSuccess
			return
		}

		locallog.Info("Clicked unsubscribe control, no confirmation text detected")
		result = models.ResultUncertain
	})
	if err != nil {
		return models.ResultFailed, fmt.Errorf("unsubscribe attempt: %w", err)
	}

	return result, nil
}

func (ra *RodAgent) confirmed(page *rod.Page) bool {
	_, err := page.Timeout(5 * time.Second).ElementR("body", confirmationPattern)
	return err == nil
}

// StartCleanup starts a background goroutine that cleans up old Rod temp directories
func StartCleanup() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if activeRodSessions.Load() > 0 {
				logging.Log.Info("Skipping /tmp cleanup: active Rod sessions detected")
				continue
			}

			pattern := filepath.Join(os.TempDir(), "rod-unsub-*")
			matches, err := filepath.Glob(pattern)
			if err != nil {
				logging.Log.WithError(err).Warn("Failed to glob temp directories")
				continue
			}

			for _, dir := range matches {
				if err := os.RemoveAll(dir); err != nil {
					logging.Log.WithError(err).Warnf("Failed to remove temp dir: %s", dir)
				} else {
					logging.Log.Infof("Cleaned up temp dir: %s", dir)
				}
			}
		}
	}()
}
