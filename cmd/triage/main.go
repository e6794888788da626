package main

import (
	"database/sql"
	"flag"
	"fmt"
	_ "github.com/ClickHouse/clickhouse-go"
	"github.com/farwydi/triage"
	"github.com/farwydi/triage/dispatch"
	"github.com/farwydi/triage/journal/file"
	"github.com/farwydi/triage/patient"
	"github.com/farwydi/triage/queue/binheap"
	"github.com/farwydi/triage/queue/memory"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"os"
	"sort"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(*configPath, logger.Sugar()); err != nil {
		logger.Sugar().Errorw("triage failed", "error", err)
		os.Exit(1)
	}
}

func newQueueFunc(cfg *Config) dispatch.NewQueueFunc[int, *patient.Patient] {
	return func(string) (triage.Queue[int, *patient.Patient], error) {
		if cfg.Backend == "heap" {
			return binheap.NewQueue[int, *patient.Patient](binheap.Config{Capacity: cfg.Capacity}), nil
		}
		return memory.NewQueue[int, *patient.Patient](memory.Config{Capacity: cfg.Capacity}), nil
	}
}

func run(configPath string, logger *zap.SugaredLogger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	var connect *sql.DB
	journal := triage.NewNullJournal()
	if cfg.DSN != "" {
		connect, err = sql.Open("clickhouse", cfg.DSN)
		if err != nil {
			return err
		}
		defer connect.Close()

		fileJournal, err := file.Open(file.Config{Workspace: cfg.Workspace})
		if err != nil {
			return err
		}
		defer fileJournal.Close()
		journal = fileJournal
	}

	d, err := dispatch.NewDispatcher(connect, newQueueFunc(cfg), dispatch.Config{
		Logger:        dispatch.NewZapLogger(logger.Desugar()),
		Journal:       journal,
		Registerer:    prometheus.NewRegistry(),
		ServeInterval: cfg.ServeInterval,
		ServeLimit:    cfg.ServeLimit,
		ShowActivity:  true,
	})
	if err != nil {
		return err
	}

	err = admitAll(d, cfg)
	if err != nil {
		return err
	}

	showWaiting(logger, d.Waiting())

	d.Run()
	d.Stop(true)

	return nil
}

// admitAll spreads the configured patients over cfg.Clerks concurrent intake clerks.
func admitAll(d *dispatch.Dispatcher, cfg *Config) error {
	var g errgroup.Group
	for clerk := 0; clerk < cfg.Clerks; clerk++ {
		clerk := clerk
		g.Go(func() error {
			for i := clerk; i < len(cfg.Patients); i += cfg.Clerks {
				pc := cfg.Patients[i]
				if err := d.Admit(patient.New(pc.Name, pc.Priority, pc.Department)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func showWaiting(logger *zap.SugaredLogger, waiting map[string][]triage.Entry[int, *patient.Patient]) {
	if len(waiting) == 0 {
		logger.Infow("waiting list is empty")
		return
	}

	departments := make([]string, 0, len(waiting))
	for department := range waiting {
		departments = append(departments, department)
	}
	sort.Strings(departments)

	for _, department := range departments {
		for position, entry := range waiting[department] {
			logger.Infow("waiting",
				"department", department,
				"position", position+1,
				"name", entry.Entity.Name,
				"priority", entry.Priority,
			)
		}
	}
}
