package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/fintrace/backend/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		accounts     = flag.Int("accounts", cfg.NumAccounts, "number of accounts to generate")
		backgroundTx = flag.Int("background-tx", cfg.NumBackgroundTx, "number of plain background transactions")
		cycles       = flag.Int("cycles", cfg.NumCycles, "number of embedded cyclic rings")
		smurfingHubs = flag.Int("smurfing-hubs", cfg.NumSmurfingHubs, "number of embedded fan-in/fan-out hubs")
		shellChains  = flag.Int("shell-chains", cfg.NumShellChains, "number of embedded shell chains")
		seed         = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		output       = flag.String("output", "transactions.csv", "output file path")
		writeStdout  = flag.Bool("stdout", false, "write JSON transaction list to stdout instead of a CSV file")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumAccounts:     *accounts,
		NumBackgroundTx: *backgroundTx,
		NumCycles:       *cycles,
		NumSmurfingHubs: *smurfingHubs,
		NumShellChains:  *shellChains,
		Seed:            *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	transactions, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(transactions); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write transactions to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteCSV(transactions, *output); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d transactions into %s\n", len(transactions), *output)
}
