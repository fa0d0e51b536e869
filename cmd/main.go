package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mediator-lab/domain"
	"mediator-lab/domain/event"
	"mediator-lab/runtime/workers"
	"mediator-lab/sink"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the configuration, builds the logger and plays the demonstration.
// Errors are returned so that deferred cleanups run before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return simulate(ctx, log, config, os.Stdout)
}

// simulate wires the mediator with its sinks, plays the fixed conversation,
// waits for the dead letters to come back from the bus and prints the timeline.
func simulate(ctx context.Context, log *slog.Logger, config Config, out io.Writer) error {
	// 1. Dead letter bus, subscribed before anything can be published
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer func() {
		_ = bus.Close()
	}()
	letters, err := bus.Subscribe(ctx, config.DeadLetterTopic)
	if err != nil {
		return fmt.Errorf("dead letter subscription failed: %w", err)
	}

	// 2. Supervised dead letter consumer
	observed := make(chan event.MessageDeadLettered, 16)
	worker := workers.NewDeadLetterWorker(log, letters)
	worker.OnLetter = func(letter event.MessageDeadLettered) {
		select {
		case observed <- letter:
		default:
			log.Debug("Dead letter observation dropped", "msg_id", letter.ID)
		}
	}
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	supervised := make(chan struct{})
	go func() {
		workers.NewSupervisor(log, config.RestartInterval).Add(worker).Run(workerCtx)
		close(supervised)
	}()
	defer func() {
		cancelWorkers()
		<-supervised
	}()

	// 3. Mediator and conversation
	timeline := sink.NewTimeline()
	mediator := domain.NewUserMediator(log, timeline, sink.NewDeadLetterSink(bus, config.DeadLetterTopic, log))
	if err := play(log, mediator); err != nil {
		return err
	}

	// 4. Dead letters round trip through the bus
	for i := 0; i < timeline.Count(sink.OutcomeDeadLettered); i++ {
		select {
		case <-observed:
		case <-time.After(config.DeadLetterTimeout):
			return fmt.Errorf("dead letter not observed after %s", config.DeadLetterTimeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return report(out, mediator, timeline, config.Colours)
}

func play(log *slog.Logger, mediator *domain.UserMediator) error {
	userID1 := domain.NewUserID("user-1")
	userID2 := domain.NewUserID("user-2")

	user1 := domain.NewUser(userID1, log)
	user2 := domain.NewUser(userID2, log)

	managed1 := user1.Register(mediator.Clone())
	managed2 := user2.Register(mediator.Clone())

	reg1, err := mediator.Register(userID1, managed1)
	if err != nil {
		return fmt.Errorf("registering %s: %w", userID1, err)
	}
	reg2, err := mediator.Register(userID2, managed2)
	if err != nil {
		return fmt.Errorf("registering %s: %w", userID2, err)
	}

	if err := reg1.SendMsg(userID2, "hi"); err != nil {
		return fmt.Errorf("sending from %s: %w", userID1, err)
	}
	if err := reg2.SendMsg(userID1, "hello"); err != nil {
		return fmt.Errorf("sending from %s: %w", userID2, err)
	}

	userID3 := domain.NewUserID("user-3")
	if err := reg1.SendMsg(userID3, "hi"); err != nil {
		return fmt.Errorf("sending from %s: %w", userID1, err)
	}
	return nil
}

func report(out io.Writer, mediator *domain.UserMediator, timeline *sink.Timeline, colours bool) error {
	members, err := mediator.Members()
	if err != nil {
		return fmt.Errorf("listing members: %w", err)
	}

	header := "  ====== Routing timeline ======"
	if colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Fprintln(out, header)
	fmt.Fprintf(out, "Registered: %s\n", strings.Join(lo.Map(members, func(id domain.UserID, _ int) string {
		return id.String()
	}), ", "))
	timeline.Render(out)
	return nil
}
