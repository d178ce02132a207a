package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/joho/godotenv"
	"github.com/saulmedina/pos-transaction-engine/internal/api"
	"github.com/saulmedina/pos-transaction-engine/internal/corrections"
	"github.com/saulmedina/pos-transaction-engine/internal/events/kafka"
	"github.com/saulmedina/pos-transaction-engine/internal/interfaces"
	"github.com/saulmedina/pos-transaction-engine/internal/ledger"
	"github.com/saulmedina/pos-transaction-engine/internal/metrics"
	"github.com/saulmedina/pos-transaction-engine/internal/models"
	"github.com/saulmedina/pos-transaction-engine/internal/reports"
	"github.com/saulmedina/pos-transaction-engine/internal/storage/memory"
	"github.com/saulmedina/pos-transaction-engine/internal/storage/postgres"
	"github.com/saulmedina/pos-transaction-engine/internal/telemetry"
	"github.com/shopspring/decimal"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	telemetry.InitLogger(os.Getenv("LOG_LEVEL"))

	store, cleanup, err := newStore()
	if err != nil {
		slog.Error("failed to initialise sale store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	var publisher interfaces.EventPublisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		topic := os.Getenv("KAFKA_TOPIC")
		if topic == "" {
			topic = ledger.TopicSaleCommitted
		}
		kafkaPublisher := kafka.NewPublisher(strings.Split(brokers, ","), topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		slog.Info("kafka publisher enabled", "brokers", brokers, "topic", topic)
	}

	ledgerService, err := ledger.NewLedger(store, publisher)
	if err != nil {
		slog.Error("failed to initialise ledger", "error", err)
		os.Exit(1)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(context.Background(), ledgerService); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
		slog.Info("seeded demo ledger data")
	}

	correctionLog := corrections.NewLog()
	reportEngine := reports.NewEngine(ledgerService)
	engineMetrics := metrics.NewEngineMetrics()

	handler := api.NewHandler(ledgerService, correctionLog, reportEngine, engineMetrics)
	router := api.NewRouter(handler, engineMetrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// newStore selects the Postgres store when DATABASE_URL is set and falls back
// to the in-memory store otherwise.
func newStore() (interfaces.SaleStore, func(), error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		slog.Info("using in-memory sale store")
		return memory.NewMemorySaleStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	slog.Info("using postgres sale store")
	return postgres.NewPostgresSaleStore(db), func() { db.Close() }, nil
}

// seedDemoData loads the historical dataset used by the dashboard demo,
// including one refund.
func seedDemoData(ctx context.Context, l *ledger.Ledger) error {
	type seed struct {
		items  []string
		amount string
		method models.PaymentMethod
		refund bool
	}
	seeds := []seed{
		{items: []string{"Laptop", "Mouse"}, amount: "5500", method: models.PaymentCard},
		{items: []string{"Monitor"}, amount: "3200", method: models.PaymentCash},
		{items: []string{"Teclado"}, amount: "-800", method: models.PaymentCash, refund: true},
		{items: []string{"Webcam", "Micrófono"}, amount: "2500", method: models.PaymentTransfer},
		{items: []string{"Cable USB 3 in 1"}, amount: "350", method: models.PaymentCard},
	}

	records := make([]models.Sale, 0, len(seeds))
	ts := time.Now().Add(-time.Duration(len(seeds)) * time.Hour)
	for _, s := range seeds {
		amount := decimal.RequireFromString(s.amount)

		var (
			record models.Sale
			err    error
		)
		if s.refund {
			record, err = models.NewRefund(ts, s.items, amount, s.method)
		} else {
			record, err = models.NewSale(ts, s.items, amount, s.method)
		}
		if err != nil {
			return err
		}

		records = append(records, record)
		ts = ts.Add(time.Hour)
	}

	return l.Seed(ctx, records)
}
