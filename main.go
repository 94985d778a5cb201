package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"flip-menu/bot"
	"flip-menu/config"
	"flip-menu/db"
	"flip-menu/events"
	"flip-menu/lang"
	"flip-menu/services"
	"flip-menu/web"
)

const usage = `usage: flip-menu [serve|migrate|seed|admin-password]`

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	// Generating a password needs neither config nor a store.
	if cmd == "admin-password" {
		runAdminPassword()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	switch cmd {
	case "serve":
		runServe(cfg)
	case "migrate":
		runMigrate(cfg)
	case "seed":
		runSeed(cfg)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func initStore(ctx context.Context, cfg *config.Config) {
	if err := db.Init(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
}

func runServe(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initStore(ctx, cfg)
	defer db.Close()

	if cfg.AutoMigrate {
		if err := migrate(ctx, false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}
	if cfg.RestaurantID == "" {
		log.Printf("RESTAURANT_ID not set; run `flip-menu seed` or use the diagnostics page")
	}

	var adder *bot.AdderBot
	if cfg.Telegram.AdderToken != "" {
		var err error
		adder, err = bot.NewAdderBot(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "adder bot:", err)
			os.Exit(1)
		}
		go adder.Start(ctx)
		log.Printf("admin bot started")
	}
	wireEvents(ctx, cfg, adder)

	if cfg.Telegram.Token != "" {
		b, err := bot.New(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bot:", err)
			os.Exit(1)
		}
		go b.Start(ctx)
		log.Printf("menu bot started")
	}

	srv, err := web.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "web:", err)
		os.Exit(1)
	}
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "http:", err)
		os.Exit(1)
	}
}

// wireEvents publishes to RabbitMQ when configured and forwards changes to
// the admin chat, either from the exchange or straight from the services.
func wireEvents(ctx context.Context, cfg *config.Config, adder *bot.AdderBot) {
	var notifier *bot.Notifier
	if adder != nil && cfg.Telegram.AdminChatID != 0 {
		notifier = bot.NewNotifier(adder.API(), cfg.Telegram.AdminChatID, lang.Th)
	}

	if cfg.Events.RabbitURL == "" {
		if notifier != nil {
			services.Events = notifier
		}
		return
	}
	pub, err := events.DialPublisher(cfg.Events.RabbitURL, cfg.Events.Exchange)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rabbitmq:", err)
		os.Exit(1)
	}
	services.Events = pub
	go func() {
		<-ctx.Done()
		pub.Close()
	}()
	if notifier != nil {
		go func() {
			if err := events.Subscribe(ctx, cfg.Events.RabbitURL, cfg.Events.Exchange, events.BindAll, notifier.Handle); err != nil {
				log.Printf("events: subscribe: %v", err)
			}
		}()
	}
}

// runMigrate applies the SQL migrations on postgres, then backfills data
// written by older versions on every driver.
func runMigrate(cfg *config.Config) {
	ctx := context.Background()
	initStore(ctx, cfg)
	defer db.Close()

	if err := migrate(ctx, true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func migrate(ctx context.Context, verbose bool) error {
	if db.Pool != nil {
		if err := applyMigrations(ctx, verbose); err != nil {
			return err
		}
	}
	n, err := services.BackfillLifecycle(ctx).Unwrap()
	if err != nil {
		return fmt.Errorf("backfill lifecycle: %w", err)
	}
	if verbose {
		fmt.Printf("Lifecycle backfilled on %d menu items.\n", n)
	} else if n > 0 {
		log.Printf("lifecycle backfilled on %d menu items", n)
	}
	return nil
}

func runSeed(cfg *config.Config) {
	ctx := context.Background()
	initStore(ctx, cfg)
	defer db.Close()

	id, err := services.SeedSampleData(ctx).Unwrap()
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
	fmt.Println("Sample restaurant created:", id)
	fmt.Println("Set RESTAURANT_ID=" + string(id) + " to serve it.")
}

func runAdminPassword() {
	pw, err := services.GenerateSecurePassword()
	if err != nil {
		fmt.Fprintln(os.Stderr, "password:", err)
		os.Exit(1)
	}
	hash, err := services.HashPassword(pw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash:", err)
		os.Exit(1)
	}
	fmt.Println("Password:", pw)
	fmt.Println("ADMIN_PASSWORD_HASH=" + hash)
}
