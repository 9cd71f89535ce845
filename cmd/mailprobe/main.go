package main

import (
	"fmt"
	"log/slog"
	"os"

	"invoicerpa/internal/common"
	"invoicerpa/internal/mailbox"
)

// mailprobe verifies that the configured IMAP credentials work: dial, login,
// log out. Useful before scheduling invoice-batch.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.ValidateMailbox(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	mb, err := mailbox.Dial(mailbox.Config{
		Addr:     cfg.Mailbox.Addr,
		Username: cfg.Mailbox.Username,
		Password: cfg.Mailbox.Password,
		Folder:   cfg.Mailbox.Folder,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mailbox connection failed: %v\n", err)
		os.Exit(1)
	}
	mb.Close()

	fmt.Println("mailbox connection OK")
}
