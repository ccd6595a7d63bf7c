// Command woodchipper is an interactive terminal log viewer: read stage,
// parse stage, classify stage, render stage, wired by cobra/viper flags
// (spec §6), following the teacher's own cmd/ convention.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/control-theory/woodchipper/internal/classify"
	"github.com/control-theory/woodchipper/internal/config"
	"github.com/control-theory/woodchipper/internal/logentry"
	"github.com/control-theory/woodchipper/internal/parse"
	"github.com/control-theory/woodchipper/internal/patternmine"
	"github.com/control-theory/woodchipper/internal/reader"
	"github.com/control-theory/woodchipper/internal/reader/kubernetes"
	"github.com/control-theory/woodchipper/internal/render"
	"github.com/control-theory/woodchipper/internal/render/interactive"
	"github.com/control-theory/woodchipper/internal/style"
)

func main() {
	os.Exit(run())
}

func run() int {
	v := viper.New()
	var flags *config.Flags
	var cfg *config.Config

	root := &cobra.Command{
		Use:   "woodchipper",
		Short: "interactive terminal log viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.Resolve(flags, v, args, config.StdoutIsTTY())
			if err != nil {
				return err
			}
			cfg = resolved
			return nil
		},
		SilenceUsage: true,
	}
	flags = config.BindFlags(root, v)
	root.Flags().BoolVar(&clusterPatterns, "cluster-patterns", false, "enable drain3 pattern-mining metadata enrichment")

	if err := root.Execute(); err != nil {
		if cfg == nil {
			log.Printf("configuration error: %v", err)
			return 2
		}
		log.Printf("error: %v", err)
		return 1
	}
	if cfg == nil {
		// RunE short-circuited (e.g. --help); nothing more to do.
		return 0
	}
	cfg.ClusterPatterns = clusterPatterns

	return runPipeline(cfg)
}

var clusterPatterns bool

func runPipeline(cfg *config.Config) int {
	st, err := cfg.ResolveStyle()
	if err != nil {
		log.Printf("configuration error: %v", err)
		return 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var rdr reader.Reader
	var k8sCtrl interactive.K8sController
	if cfg.Reader == config.ReaderKube {
		kr := &kubernetes.Reader{
			Client:     kubernetes.DefaultClientConfig(),
			Namespaces: namespacesFor(cfg),
			Selector:   cfg.Selector,
			PodSubstr:  cfg.PodSubstr,
			TailLines:  -1,
		}
		rdr = kr
		k8sCtrl = kr
	} else {
		rdr, err = reader.New(cfg.Reader)
		if err != nil {
			log.Printf("configuration error: %v", err)
			return 2
		}
	}

	rawCh := make(chan logentry.LogEntry, 1024)
	exitReq := make(chan struct{})
	exitAck := make(chan struct{})

	readerDone := make(chan error, 1)
	go func() {
		readerDone <- rdr.Start(ctx, rawCh, &reader.ExitSignal{Request: exitReq, Ack: exitAck})
	}()

	var miner classify.Miner
	if cfg.ClusterPatterns {
		miner = patternmine.New()
	}
	parserChain := cfg.ParserChain()
	classifierChain := classify.Chain(miner)

	events := make(chan render.Event, 1024)
	pipelineDone := make(chan struct{})
	go func() {
		defer close(pipelineDone)
		defer close(events)
		for entry := range rawCh {
			switch entry.Kind {
			case logentry.EntryEOF:
				return
			case logentry.EntryInternal:
				events <- render.Event{InternalLevel: entry.Level, InternalText: entry.Text}
			case logentry.EntryMessage:
				msg := parse.Chain(parserChain, entry.Raw, entry.Meta)
				cm := classify.Run(classifierChain, msg)
				events <- render.Event{Message: &cm}
			}
		}
	}()

	exitCode := runRenderer(ctx, cfg, st, events, k8sCtrl, exitReq)

	cancel()
	select {
	case <-exitAck:
	case <-time.After(250 * time.Millisecond):
	}
	// A reader blocked on a stdin read ignores cancellation until its next
	// scan (spec §5: "a blocked reader on stdin cannot be cancelled"), so
	// rawCh may never see EntryEOF and the pipeline goroutine's range over
	// it would otherwise block forever. The process exits regardless, with
	// that goroutine left running.
	select {
	case <-pipelineDone:
	case <-time.After(250 * time.Millisecond):
	}
	return exitCode
}

func runRenderer(ctx context.Context, cfg *config.Config, st *style.Style, events chan render.Event, k8sCtrl interactive.K8sController, exitReq chan<- struct{}) int {
	switch cfg.Renderer {
	case config.RendererJSON:
		if err := (render.JSONRenderer{}).Render(ctx, events, os.Stdout); err != nil {
			log.Printf("render error: %v", err)
			return 1
		}
	case config.RendererPlain:
		if err := (render.PlainRenderer{}).Render(ctx, events, os.Stdout); err != nil {
			log.Printf("render error: %v", err)
			return 1
		}
	case config.RendererStyled:
		if err := (render.StyledRenderer{Style: st}).Render(ctx, events, os.Stdout); err != nil {
			log.Printf("render error: %v", err)
			return 1
		}
	case config.RendererInteractive:
		if err := interactive.Run(ctx, events, st, k8sCtrl, exitReq); err != nil {
			fmt.Fprintf(os.Stderr, "terminal error: %v\n", err)
			return 1
		}
	}
	return 0
}

func namespacesFor(cfg *config.Config) []string {
	if cfg.Namespace == "" {
		return nil
	}
	return []string{cfg.Namespace}
}
