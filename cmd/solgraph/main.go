// Command solgraph fetches one or more Solana transactions, parses each
// into an account/graph context (C1-C8), composes them into a graphspace
// (C9) and serializes the result (C10), optionally persisting it. Grounded
// on the teacher's cmd/bot/main.go: signal-aware root context, config load,
// logger init, fatal-on-setup-error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/solgraph/txgraph/internal/boundary"
	"github.com/solgraph/txgraph/internal/compose"
	"github.com/solgraph/txgraph/internal/config"
	"github.com/solgraph/txgraph/internal/logger"
	"github.com/solgraph/txgraph/internal/orchestrator"
	"github.com/solgraph/txgraph/internal/parser"
	"github.com/solgraph/txgraph/internal/rpcboundary"
	"github.com/solgraph/txgraph/internal/serialize"
	"github.com/solgraph/txgraph/internal/storage/postgres"
	"github.com/solgraph/txgraph/internal/swap"
	"github.com/solgraph/txgraph/internal/txcontext"
)

// signatureList accumulates repeated -sig flags.
type signatureList []string

func (s *signatureList) String() string { return "" }
func (s *signatureList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to config file")
	var signatures signatureList
	flag.Var(&signatures, "sig", "Transaction signature to include; repeatable")
	priceFeedURL := flag.String("price-feed", "", "Base URL of a CoinGecko-shaped market_chart/range price endpoint; omitted disables USD price-ratio derivation")
	outPath := flag.String("out", "", "Write the serialized graph JSON here instead of stdout")
	flag.Parse()

	if len(signatures) == 0 {
		log.Fatalf("at least one -sig signature is required")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	pool, err := rpcboundary.NewPool(rootCtx, cfg.RPCList, appLogger)
	if err != nil {
		log.Fatalf("failed to build RPC pool: %v", err)
	}

	var priceFetcher *rpcboundary.PriceFetcher
	if *priceFeedURL != "" {
		priceFetcher = rpcboundary.NewPriceFetcher(*priceFeedURL)
	}
	fetcher := rpcboundary.NewAdapter(pool, priceFetcher, appLogger)

	orch := orchestrator.New(parser.Default(), swap.DefaultCatalog(), appLogger)

	parsedTxs := make([]*boundary.ParsedTransaction, 0, len(signatures))
	for _, sig := range signatures {
		tx, err := fetcher.FetchTransaction(rootCtx, sig)
		if err != nil {
			log.Fatalf("failed to fetch transaction %s: %v", sig, err)
		}
		parsedTxs = append(parsedTxs, tx)
	}

	contexts, err := orch.ParseMany(rootCtx, parsedTxs, cfg.Workers)
	if err != nil {
		log.Fatalf("failed to parse transactions: %v", err)
	}

	graphspace, err := compose.Build(rootCtx, contexts, fetcher, compose.Options{LinkSequential: cfg.LinkSequential}, appLogger)
	if err != nil {
		log.Fatalf("failed to compose graphspace: %v", err)
	}

	solUSDPrice := resolvePrice(rootCtx, priceFetcher, graphspace.Contexts, appLogger)
	data := serialize.Build(graphspace.Contexts, graphspace.Merged, solUSDPrice, appLogger)

	if cfg.PostgresURL != "" {
		persist(rootCtx, cfg.PostgresURL, appLogger, &data)
	}

	writeOutput(*outPath, &data)
}

func resolvePrice(ctx context.Context, fetcher *rpcboundary.PriceFetcher, contexts []*txcontext.Context, appLogger *zap.Logger) float64 {
	if fetcher == nil || len(contexts) == 0 {
		return 0
	}
	ts := contexts[0].BlockTime * 1000
	price, err := fetcher.GetSolUsdPrice(ctx, ts)
	if err != nil {
		appLogger.Warn("sol/usd price lookup failed", zap.Error(err))
		return 0
	}
	if price == nil {
		return 0
	}
	return *price
}

func persist(ctx context.Context, dsn string, appLogger *zap.Logger, data *serialize.GraphData) {
	store, err := postgres.NewStorage(dsn, appLogger)
	if err != nil {
		appLogger.Error("failed to connect to storage", zap.Error(err))
		return
	}
	if err := store.RunMigrations(); err != nil {
		appLogger.Error("failed to run migrations", zap.Error(err))
		return
	}
	requestID := uuid.NewString()
	if err := store.SaveGraph(ctx, requestID, data); err != nil {
		appLogger.Error("failed to save graph", zap.Error(err))
		return
	}
	appLogger.Info("graph saved", zap.String("request_id", requestID))
}

func writeOutput(path string, data *serialize.GraphData) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal graph output: %v", err)
	}
	if path == "" {
		os.Stdout.Write(body)
		os.Stdout.Write([]byte("\n"))
		return
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		log.Fatalf("failed to write output file: %v", err)
	}
}
