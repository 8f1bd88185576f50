// adawallet-cli is a command-line Cardano light wallet backed by Blockfrost.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/skip2/go-qrcode"
	"golang.org/x/term"

	"github.com/Klingon-tech/adawallet/config"
	klog "github.com/Klingon-tech/adawallet/internal/log"
	"github.com/Klingon-tech/adawallet/internal/wallet"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

const version = "0.1.0"

func main() {
	cfg, flags, err := config.Load(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		config.PrintUsage(os.Stdout)
		return
	}
	if err != nil {
		fatal("%v", err)
	}
	if flags.Version {
		fmt.Printf("adawallet-cli version %s\n", version)
		return
	}
	if len(flags.Args) == 0 {
		config.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.LogFilePath()); err != nil {
		fatal("init logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := flags.Args[0]
	cmdArgs := flags.Args[1:]

	switch cmd {
	case "address":
		cmdAddress(cfg, flags, cmdArgs)
	case "mnemonic":
		cmdMnemonic(cfg, flags)
	case "private-key":
		cmdPrivateKey(cfg, flags)
	case "balance":
		cmdBalance(ctx, cfg, flags, cmdArgs)
	case "token-info":
		cmdTokenInfo(ctx, cfg, flags, cmdArgs)
	case "token-balance":
		cmdTokenBalance(ctx, cfg, flags, cmdArgs)
	case "send":
		cmdSend(ctx, cfg, flags, cmdArgs)
	case "send-token":
		cmdSendToken(ctx, cfg, flags, cmdArgs)
	case "init-config":
		cmdInitConfig(cfg)
	case "env":
		if err := config.EnvUsage(); err != nil {
			fatal("%v", err)
		}
	case "help":
		config.PrintUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		config.PrintUsage(os.Stderr)
		os.Exit(1)
	}
}

// ── wallet setup ────────────────────────────────────────────────────────

// loadSecret reads the wallet secret from the source chosen by flags.
func loadSecret(flags *config.Flags) wallet.Secret {
	switch {
	case flags.PasswordPrompt:
		password, err := readPassword("Enter wallet password: ")
		if err != nil {
			fatal("read password: %v", err)
		}
		if len(password) == 0 {
			fatal("password cannot be empty")
		}
		return wallet.Password(string(password))
	case flags.MnemonicFile != "":
		return wallet.Mnemonic(readSecretFile(flags.MnemonicFile))
	case flags.KeyFile != "":
		return wallet.RawKey(readSecretFile(flags.KeyFile))
	default:
		klog.CLI.Warn().Msg("No secret given, using a new random wallet")
		return wallet.Random()
	}
}

func readSecretFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		fatal("read secret: %v", err)
	}
	return strings.TrimSpace(string(data))
}

// resolveNetwork picks the configured network, or the one implied by the
// API key.
func resolveNetwork(cfg *config.Config) types.Network {
	if cfg.Network != config.Auto {
		n, err := types.NetworkByName(string(cfg.Network))
		if err != nil {
			fatal("%v", err)
		}
		return n
	}
	return types.NetworkFromAPIKey(cfg.Indexer.APIKey)
}

func passwordTemplate(cfg *config.Config) string {
	if cfg.Wallet.Template != "" {
		return cfg.Wallet.Template
	}
	return wallet.DefaultTemplate
}

// deriveIdentity builds the key material without contacting the indexer.
func deriveIdentity(cfg *config.Config, flags *config.Flags) *wallet.Identity {
	id, err := wallet.Derive(loadSecret(flags), passwordTemplate(cfg), resolveNetwork(cfg))
	if err != nil {
		fatal("%v", err)
	}
	return id
}

// openWallet builds a wallet connected to the indexer.
func openWallet(cfg *config.Config, flags *config.Flags) *wallet.Wallet {
	if err := config.Validate(cfg); err != nil {
		fatal("invalid config: %v", err)
	}
	w, err := wallet.New(wallet.Options{
		Secret:   loadSecret(flags),
		Type:     cfg.Wallet.Type,
		APIKey:   cfg.Indexer.APIKey,
		Template: cfg.Wallet.Template,
		Network:  string(cfg.Network),
		Whitelist: &wallet.Whitelist{
			Coins:  cfg.Wallet.WhitelistCoins,
			Tokens: cfg.Wallet.WhitelistTokens,
		},
		IndexerURL:     cfg.Indexer.BaseURL,
		IndexerTimeout: cfg.Indexer.Timeout,
	})
	if err != nil {
		fatal("open wallet: %v", err)
	}
	return w
}

// ── key commands ────────────────────────────────────────────────────────

func cmdAddress(cfg *config.Config, flags *config.Flags, args []string) {
	fs := flag.NewFlagSet("address", flag.ExitOnError)
	qrFile := fs.String("qr", "", "Write the address as a QR code PNG")
	base := fs.Bool("base", false, "Also show the base (payment+stake) address")
	fs.Parse(args)

	id := deriveIdentity(cfg, flags)
	addr := id.Address().String()
	fmt.Println(addr)
	if *base {
		fmt.Println(id.BaseAddress().String())
	}

	if *qrFile != "" {
		if err := qrcode.WriteFile(addr, qrcode.Medium, 256, *qrFile); err != nil {
			fatal("write QR code: %v", err)
		}
		fmt.Fprintf(os.Stderr, "QR code written to %s\n", *qrFile)
	}
}

func cmdMnemonic(cfg *config.Config, flags *config.Flags) {
	id := deriveIdentity(cfg, flags)
	m, ok := id.Mnemonic()
	if !ok {
		fatal("wallet was created from a raw key and has no recovery phrase")
	}
	fmt.Println(m)
}

func cmdPrivateKey(cfg *config.Config, flags *config.Flags) {
	id := deriveIdentity(cfg, flags)
	fmt.Println(id.PrivateKey())
}

// ── balances ────────────────────────────────────────────────────────────

func cmdBalance(ctx context.Context, cfg *config.Config, flags *config.Flags, args []string) {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	addr := fs.String("address", "", "Address to query (default: wallet address)")
	fs.Parse(args)

	w := openWallet(cfg, flags)
	printBalance(w.CoinBalance(ctx, *addr), "ADA")
}

func cmdTokenBalance(ctx context.Context, cfg *config.Config, flags *config.Flags, args []string) {
	if len(args) < 1 {
		fatal("Usage: adawallet-cli token-balance <unit> [--address <addr>]")
	}
	unit := args[0]
	fs := flag.NewFlagSet("token-balance", flag.ExitOnError)
	addr := fs.String("address", "", "Address to query (default: wallet address)")
	fs.Parse(args[1:])

	w := openWallet(cfg, flags)
	printBalance(w.TokenBalance(ctx, unit, *addr), "")
}

func printBalance(res wallet.BalanceResult, suffix string) {
	if suffix != "" {
		fmt.Printf("%s %s\n", res.Amount, suffix)
	} else {
		fmt.Println(res.Amount)
	}
	if res.Degraded() {
		fatal("lookup failed, balance unknown: %v", res.Err)
	}
}

func cmdTokenInfo(ctx context.Context, cfg *config.Config, flags *config.Flags, args []string) {
	if len(args) != 1 {
		fatal("Usage: adawallet-cli token-info <unit>")
	}
	w := openWallet(cfg, flags)
	res := w.TokenInformation(ctx, args[0])
	if res.Degraded() {
		fatal("token info: %v", res.Err)
	}
	out, err := json.MarshalIndent(res.Info, "", "  ")
	if err != nil {
		fatal("encode: %v", err)
	}
	fmt.Println(string(out))
}

// ── transfers ───────────────────────────────────────────────────────────

func cmdSend(ctx context.Context, cfg *config.Config, flags *config.Flags, args []string) {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	to := fs.String("to", "", "Recipient address")
	amount := fs.String("amount", "", "Amount in ADA (e.g. 1.5)")
	fs.Parse(args)

	if *to == "" || *amount == "" {
		fatal("Usage: adawallet-cli send --to <addr> --amount <ada>")
	}

	w := openWallet(cfg, flags)
	printTransfer(w.SendCoinTo(ctx, *to, *amount))
}

func cmdSendToken(ctx context.Context, cfg *config.Config, flags *config.Flags, args []string) {
	if len(args) < 1 {
		fatal("Usage: adawallet-cli send-token <unit> --to <addr> --amount <n>")
	}
	unit := args[0]
	fs := flag.NewFlagSet("send-token", flag.ExitOnError)
	to := fs.String("to", "", "Recipient address")
	amount := fs.String("amount", "", "Amount in token units")
	fs.Parse(args[1:])

	if *to == "" || *amount == "" {
		fatal("Usage: adawallet-cli send-token <unit> --to <addr> --amount <n>")
	}

	w := openWallet(cfg, flags)
	printTransfer(w.SendTokenTo(ctx, unit, *to, *amount))
}

func printTransfer(res wallet.TransferResult) {
	if !res.Success {
		fatal("%s", res.Description)
	}
	fmt.Printf("Submitted: %s\n", res.Description)
}

// ── config ──────────────────────────────────────────────────────────────

func cmdInitConfig(cfg *config.Config) {
	path, err := config.EnsureDataDir(cfg)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Println(path)
}

// ── helpers ─────────────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return nil, errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
