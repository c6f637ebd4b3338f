package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/quokkabay/quokkabay/internal/config"
	"github.com/quokkabay/quokkabay/internal/infra/logger"
	mq "github.com/quokkabay/quokkabay/internal/infra/queue"
)

var (
	tailBinding string
	tailQueue   string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect domain events on the broker",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print events as they are published, one JSON object per line",
	RunE:  runEventsTail,
}

func init() {
	eventsTailCmd.Flags().StringVar(&tailBinding, "binding", "#", "routing key pattern, e.g. favorite.*")
	eventsTailCmd.Flags().StringVar(&tailQueue, "queue", "", "durable queue name; empty for a temporary queue")
	eventsCmd.AddCommand(eventsTailCmd)
}

func runEventsTail(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.RabbitMQ.Enabled {
		return errors.New("rabbitmq is disabled (set QUOKKA_RABBITMQ_ENABLED=true)")
	}
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	conn, err := mq.Dial(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	consumer, err := mq.NewConsumer(conn, tailQueue, tailBinding, 0, log, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = consumer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	err = consumer.Handle(ctx, func(_ context.Context, ev mq.Event) error {
		line, err := sonic.MarshalString(ev)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, line)
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
