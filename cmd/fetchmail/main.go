package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Meghana-05-02/RFP-System/internal/config"
	"github.com/Meghana-05-02/RFP-System/internal/database"
	"github.com/Meghana-05-02/RFP-System/internal/extraction"
	"github.com/Meghana-05-02/RFP-System/internal/gemini"
	"github.com/Meghana-05-02/RFP-System/internal/mail"
	"github.com/Meghana-05-02/RFP-System/internal/repositories"
	"github.com/Meghana-05-02/RFP-System/internal/services"
)

type options struct {
	limit           int
	markSeen        bool
	createProposals bool
}

// parseFlags keeps the no-flag invocation read-only: a bare run lists unread
// messages without writing proposals or touching mailbox flags.
func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("fetchmail", flag.ContinueOnError)
	fs.IntVar(&opts.limit, "limit", 10, "maximum number of unread messages to process")
	fs.BoolVar(&opts.markSeen, "mark-seen", false, "mark processed messages as read")
	fs.BoolVar(&opts.createProposals, "create-proposals", false, "extract and store proposals instead of only listing messages")
	err := fs.Parse(args)
	return opts, err
}

// fetchmail pulls unread messages from the configured mailbox and turns
// vendor replies into proposals. Without flags it only lists the unread
// messages; writing proposals and marking mail as read are both opt-in.
func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	pool, err := database.Connect(cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.RunMigrations(pool); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	vendorRepo := repositories.NewVendorRepository(pool)
	rfpRepo := repositories.NewRFPRepository(pool)
	proposalRepo := repositories.NewProposalRepository(pool)
	extractor := extraction.NewEngine(gemini.NewClient(cfg.Gemini), cfg.Gemini.APIKey)
	ingest := services.NewIngestService(vendorRepo, rfpRepo, proposalRepo, extractor, logger)

	client, err := mail.DialIMAP(cfg.IMAP)
	if err != nil {
		logger.Fatal("failed to connect to imap server", zap.Error(err))
	}
	defer client.Close()

	messages, err := client.FetchUnseen(opts.limit)
	if err != nil {
		logger.Fatal("failed to fetch messages", zap.Error(err))
	}

	if len(messages) == 0 {
		fmt.Println("No unread messages.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var created, skipped, failed int
	for _, msg := range messages {
		fmt.Printf("Processing message %d: %q from %s\n", msg.SeqNum, msg.Subject, msg.FromAddress)

		if opts.createProposals {
			outcome, err := ingest.ProcessMessage(ctx, msg)
			switch {
			case err != nil:
				failed++
				logger.Error("failed to process message",
					zap.Uint32("seq_num", msg.SeqNum),
					zap.Error(err),
				)
			case outcome.Skipped:
				skipped++
				fmt.Printf("  skipped: %s\n", outcome.Reason)
			default:
				created++
				fmt.Printf("  proposal stored (id %d)\n", outcome.ProposalID)
			}
		}

		if opts.markSeen {
			if err := client.MarkSeen(msg.SeqNum); err != nil {
				logger.Warn("failed to mark message as seen",
					zap.Uint32("seq_num", msg.SeqNum),
					zap.Error(err),
				)
			}
		}
	}

	fmt.Printf("\nDone: %d proposals stored, %d skipped, %d failed out of %d messages.\n",
		created, skipped, failed, len(messages))
}
