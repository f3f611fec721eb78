package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"salvadanaio/internal/backup"
	"salvadanaio/internal/cli"
	"salvadanaio/internal/services"
	"salvadanaio/internal/store"
)

// cmdContext holds the shared state for all subcommands.
type cmdContext struct {
	ledger *services.Ledger
	store  store.Store
	stdin  *bufio.Reader
}

var root struct {
	Export  exportCmd  `cmd:"" help:"Write the collection to a file or stdout."`
	Import  importCmd  `cmd:"" help:"Replace the collection with a backup file."`
	Clear   clearCmd   `cmd:"" help:"Delete every piggy bank and transaction."`
	Recalc  recalcCmd  `cmd:"" help:"Recompute all cached totals from transactions."`
	Summary summaryCmd `cmd:"" help:"Print aggregate totals."`
}

type exportCmd struct {
	Out    string `short:"o" default:"-" help:"Output file ('-' for stdout)."`
	Format string `default:"json" enum:"json,csv" help:"Export format."`
}

func (c *exportCmd) Run(cc *cmdContext) error {
	var w io.Writer = os.Stdout
	if c.Out != "-" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	ctx := context.Background()
	if c.Format == "csv" {
		banks, err := cc.ledger.Banks(ctx)
		if err != nil {
			return err
		}
		return backup.WriteSummaryCSV(banks, w)
	}
	return cc.ledger.Export(ctx, w)
}

type importCmd struct {
	File string `arg:"" type:"existingfile" help:"Backup file to import."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *importCmd) Run(cc *cmdContext) error {
	if !c.Yes && !confirm(cc.stdin, "This will replace ALL current data. Continue? [y/N] ") {
		fmt.Println("Import cancelled.")
		return nil
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer func() { _ = f.Close() }()

	count, err := cc.ledger.Import(context.Background(), f)
	if err != nil {
		if store.IsFormatError(err) {
			return fmt.Errorf("%s is not a valid backup: %w", c.File, err)
		}
		return err
	}
	fmt.Printf("Imported %d piggy banks.\n", count)
	return nil
}

type clearCmd struct {
	Yes bool `short:"y" help:"Skip both confirmation prompts."`
}

func (c *clearCmd) Run(cc *cmdContext) error {
	if !c.Yes {
		if !confirm(cc.stdin, "Delete EVERY piggy bank and transaction? [y/N] ") {
			fmt.Println("Clear cancelled.")
			return nil
		}
		if !confirm(cc.stdin, "This cannot be undone. Are you absolutely sure? [y/N] ") {
			fmt.Println("Clear cancelled.")
			return nil
		}
	}

	if err := cc.ledger.ClearAll(context.Background()); err != nil {
		return err
	}
	fmt.Println("All data cleared.")
	return nil
}

type recalcCmd struct{}

func (c *recalcCmd) Run(cc *cmdContext) error {
	ctx := context.Background()
	// Load already recomputes totals; saving persists the healed values.
	banks, err := cc.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := cc.store.Save(ctx, banks); err != nil {
		return err
	}
	fmt.Printf("Recalculated totals for %d piggy banks.\n", len(banks))
	return nil
}

type summaryCmd struct{}

func (c *summaryCmd) Run(cc *cmdContext) error {
	summary, err := cc.ledger.Summary(context.Background())
	if err != nil {
		return err
	}
	info := summary.MostUsed.Info()
	fmt.Printf("Total saved:  %s\n", summary.GrandTotal.Format())
	fmt.Printf("Piggy banks:  %d\n", summary.BankCount)
	fmt.Printf("Transactions: %d\n", summary.TransactionCount)
	fmt.Printf("Top category: %s %s\n", info.Icon, info.Name)
	return nil
}

// confirm asks a yes/no question and reports whether the answer was yes.
func confirm(r *bufio.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := r.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func main() {
	ktx := kong.Parse(&root,
		kong.Name("salvadanaioctl"),
		kong.Description("Administration tool for the savings tracker."))

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.InitStore(context.Background(), logger, cfg)
	if result.Cleanup != nil {
		defer func() { _ = result.Cleanup() }()
	}

	cc := &cmdContext{
		ledger: services.NewLedger(result.Store, nil),
		store:  result.Store,
		stdin:  bufio.NewReader(os.Stdin),
	}

	err := ktx.Run(cc)
	ktx.FatalIfErrorf(err)
}
