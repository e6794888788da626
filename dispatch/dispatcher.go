package dispatch

import (
	"database/sql"
	"fmt"
	"github.com/farwydi/triage"
	"github.com/farwydi/triage/patient"
	"sync"
	"sync/atomic"
	"time"
)

// NewDispatcher serves admitted patients in priority order and records every
// visit through connect. A nil connect only serves.
func NewDispatcher(connect *sql.DB, newQueue NewQueueFunc[int, *patient.Patient], config ...Config) (*Dispatcher, error) {
	// Set default config
	cfg := configDefault(config...)

	logger, _ := NewStdLogger()
	if cfg.Logger != nil {
		logger = cfg.Logger
	}

	journal := cfg.Journal
	if journal == nil {
		journal = triage.NewNullJournal()
	}

	d := &Dispatcher{
		cfg:     cfg,
		logger:  logger,
		pool:    NewPool(newQueue),
		journal: journal,
		stopSig: make(chan bool),
		connect: connect,
		now:     time.Now,
	}

	d.metrics = newMetrics(func() float64 {
		return float64(d.pool.Len())
	})
	if err := d.metrics.register(cfg.Registerer); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	return d, nil
}

type Dispatcher struct {
	cfg Config

	logger  Logger
	metrics *metrics

	pool    *Pool[int, *patient.Patient]
	journal triage.Journal

	stopSig chan bool
	connect *sql.DB

	// admitMx orders admissions against the shutdown flip
	admitMx  sync.RWMutex
	shutdown int32
	running  int32
	now      func() time.Time
}

func (d *Dispatcher) Admit(p *patient.Patient) error {
	d.admitMx.RLock()
	defer d.admitMx.RUnlock()

	if atomic.LoadInt32(&d.shutdown) != 0 {
		return triage.ErrShutdown
	}

	err := d.pool.Push(p)
	if err != nil {
		return fmt.Errorf("admission of %s failed: %w", p.Name, err)
	}

	d.metrics.admitted.Inc()
	if d.cfg.ShowActivity {
		d.logger.Infow("patient admitted",
			"name", p.Name,
			"priority", p.Rank,
			"department", p.Department,
		)
	}
	return nil
}

// Waiting lists queued patients per department, front to back.
func (d *Dispatcher) Waiting() map[string][]triage.Entry[int, *patient.Patient] {
	return d.pool.Snapshot()
}

func (d *Dispatcher) Len() int {
	return d.pool.Len()
}

func newVisit(p *patient.Patient, servedAt time.Time) *triage.Visit {
	return &triage.Visit{
		PatientID:  p.ID.String(),
		Name:       p.Name,
		Priority:   p.Priority(),
		Department: p.Department,
		AdmittedAt: p.AdmittedAt,
		ServedAt:   servedAt,
	}
}

func (d *Dispatcher) serve(limit int) {
	var visits []*triage.Visit

	if d.connect != nil {
		retries, err := d.journal.Eject(limit)
		if err != nil {
			d.logger.Warnw("problem ejecting visits from journal", "error", err)
		}
		visits = append(visits, retries...)
	}

	patients, err := d.pool.Eject(limit)
	if err != nil {
		d.logger.Warnw("problem ejecting patients from queue", "error", err)
	}

	servedAt := d.now()
	for _, p := range patients {
		visit := newVisit(p, servedAt)
		d.metrics.served.Inc()
		if d.cfg.ShowActivity {
			d.logger.Infow("serving patient",
				"name", p.Name,
				"priority", p.Rank,
				"department", p.Department,
			)
		}
		if d.cfg.OnServe != nil {
			d.cfg.OnServe(visit)
		}
		visits = append(visits, visit)
	}

	if len(visits) == 0 || d.connect == nil {
		return
	}

	err = d.publish(visits)
	if err != nil {
		d.metrics.publishFailures.Inc()
		d.logger.Warnw("publication ended with an error", "error", err)
		d.fallback(visits)
	}
}

func (d *Dispatcher) publish(visits []*triage.Visit) error {
	panicked := true
	tx, err := d.connect.Begin()
	if err != nil {
		return err
	}
	defer func() {
		// Make sure to rollback when panic, Block error or Commit error
		if panicked || err != nil {
			if err := tx.Rollback(); err != nil {
				d.logger.Errorw("problem when rolling back a transaction", "error", err)
			}
		}
	}()

	err = func() error {
		stmt, err := tx.Prepare(visits[0].SQL())
		if err != nil {
			return err
		}

		for _, visit := range visits {
			_, err := stmt.Exec(visit.ToExec()...)
			if err != nil {
				_ = stmt.Close()
				return err
			}
		}

		return stmt.Close()
	}()

	if err == nil {
		err = tx.Commit()
	}

	panicked = false

	return err
}

func (d *Dispatcher) fallback(visits []*triage.Visit) {
	for i, visit := range visits {
		if err := d.journal.Push(visit); err != nil {
			d.logger.Errorw("data lost! fatal error when writing visits to journal",
				"error", err,
				"lost", len(visits)-i,
			)
			return
		}
	}
}

// Run serves up to ServeLimit patients every ServeInterval until Stop.
func (d *Dispatcher) Run() {
	if !atomic.CompareAndSwapInt32(&d.running, 0, 1) {
		return
	}

	t := time.NewTicker(d.cfg.ServeInterval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-t.C:
				d.serve(d.cfg.ServeLimit)
			case serveTail := <-d.stopSig:
				d.drain(serveTail)
				close(d.stopSig)
				return
			}
		}
	}()
}

// Stop refuses new admissions. With serveTail every waiting patient is served
// first, otherwise they are dropped.
func (d *Dispatcher) Stop(serveTail bool) {
	d.admitMx.Lock()
	stopped := atomic.CompareAndSwapInt32(&d.shutdown, 0, 1)
	d.admitMx.Unlock()

	if !stopped {
		return
	}

	if atomic.LoadInt32(&d.running) == 0 {
		d.drain(serveTail)
		return
	}

	d.stopSig <- serveTail
	<-d.stopSig
}

func (d *Dispatcher) drain(serveTail bool) {
	if serveTail {
		d.serve(-1)
		return
	}

	left, _ := d.pool.Eject(-1)
	if len(left) > 0 {
		d.logger.Warnw("patients left unserved", "count", len(left))
	}
}
