package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"email-unsubscriber/internal/agent"
	"email-unsubscriber/internal/classify"
	"email-unsubscriber/internal/config"
	"email-unsubscriber/internal/logging"
	"email-unsubscriber/internal/mailstore"
	"email-unsubscriber/internal/models"
	"email-unsubscriber/internal/pipeline"
	"email-unsubscriber/internal/report"
	"email-unsubscriber/internal/unsubscribe"
)

const oneClickTimeout = 30 * time.Second

var (
	flagConfig   string
	flagMbox     string
	flagLimit    int
	flagMailbox  string
	flagDryRun   bool
	flagLogLevel string
	flagReport   string
	flagConfirm  bool
)

var rootCmd = &cobra.Command{
	Use:   "unsubscriber",
	Short: "Scan recent mail and complete unsubscribe flows for unwanted messages",
	Long: `unsubscriber connects to a mailbox (IMAP or a local mbox file), scans the
most recent messages for newsletters and other unwanted mail, extracts their
unsubscribe links and walks each flow to completion with a headless browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagConfig, "config", "c", "config.yaml", "path to the configuration file")
	flags.StringVar(&flagMbox, "mbox", "", "read messages from a local mbox file instead of IMAP")
	flags.IntVar(&flagLimit, "limit", 0, "number of recent messages to scan")
	flags.StringVar(&flagMailbox, "mailbox", "", "mailbox to scan")
	flags.BoolVar(&flagDryRun, "dry-run", false, "extract links but do not unsubscribe")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&flagReport, "report", "", "write a JSON run report to this file")
	flags.BoolVar(&flagConfirm, "confirm", false, "ask before unsubscribing from each message")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.Fatalf("%v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Secrets such as EMAIL_PASSWORD may live in a .env next to the binary.
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("read configuration file: %w", err)
	}
	applyFlags(cmd, cfg)

	if err := logging.Configure(cfg.LogLevel); err != nil {
		return err
	}

	if flagMbox == "" {
		if err := config.Validate(cfg); err != nil {
			return err
		}
	} else if cfg.Email.Limit <= 0 {
		return fmt.Errorf("email.limit must be positive")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// Background cleanup for browser temp profiles left by crashed attempts.
	agent.StartCleanup()

	opts := unsubscribe.Options{
		Classifier: classify.NewKeywordClassifier(),
		Agent:      agent.NewRodAgent(cfg.Headless, cfg.AgentTimeout),
		OneClick:   agent.NewOneClickClient(oneClickTimeout),
	}
	if cfg.SMTP.Address != "" {
		opts.Mailer = agent.NewMailtoSender(cfg)
	}
	if cfg.RequireUserConfirmation {
		opts.Confirm = promptConfirm(bufio.NewReader(os.Stdin))
	}

	svc, err := unsubscribe.NewService(cfg, opts)
	if err != nil {
		return err
	}

	rep, err := pipeline.NewProcessor(store, svc, cfg).Run()
	if err != nil {
		return err
	}

	if flagReport != "" {
		if err := report.Write(flagReport, rep); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logging.Log.Infof("Run report written to %s", flagReport)
	}

	return nil
}

// applyFlags folds explicitly set command line flags over the file configuration.
func applyFlags(cmd *cobra.Command, cfg *models.Config) {
	flags := cmd.Flags()
	if flags.Changed("limit") {
		cfg.Email.Limit = flagLimit
	}
	if flags.Changed("mailbox") {
		cfg.Email.MailBox = flagMailbox
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = flagDryRun
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("confirm") {
		cfg.RequireUserConfirmation = flagConfirm
	}
}

// openStore connects to the configured message source, leaving it ready to list.
func openStore(cfg *models.Config) (mailstore.Store, error) {
	if flagMbox != "" {
		logging.Log.Infof("Reading messages from mbox file %s", flagMbox)
		return mailstore.NewMboxStore(flagMbox)
	}

	store := mailstore.NewIMAPStore()
	if err := store.Connect(cfg.Email.Imap); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Email.Imap, err)
	}

	var err error
	if cfg.Email.AccessToken != "" {
		err = store.LoginXOAUTH2(cfg.Email.Login, cfg.Email.AccessToken)
	} else {
		err = store.Login(cfg.Email.Login, cfg.Email.Password)
	}
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("authenticate as %s: %w", cfg.Email.Login, err)
	}

	if err := store.SelectMailbox(cfg.Email.MailBox); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("select mailbox %s: %w", cfg.Email.MailBox, err)
	}

	return store, nil
}

// promptConfirm asks on the terminal before each unsubscribe. Anything but an
// explicit yes keeps the subscription.
func promptConfirm(reader *bufio.Reader) unsubscribe.ConfirmFunc {
	return func(msg *models.Message) bool {
		fmt.Printf("Subject: %s\tFrom: %s\n", msg.Subject, msg.From)
		fmt.Print("Do you want to unsubscribe from this email? (y/n): ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
