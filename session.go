package shrieker

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phroun/shrieker/journal"
)

// SessionConfig describes one game life
type SessionConfig struct {
	Binary  string
	Args    []string
	Rows    int
	Cols    int
	Options GameOptions
	Relay   RelayConfig

	// Strategy plays the game; nil means a RandomMover
	Strategy Strategy
	// Journal records the life when set
	Journal *journal.Store
	// PTY runs the child; nil means NewPTY()
	PTY    PTY
	Rand   *rand.Rand
	Logger *zap.Logger
}

// Result summarises a finished life
type Result struct {
	LifeID  string
	Options GameOptions
	Turns   int
	Frames  int
	Died    bool
	Message string
	Status  Status
}

// Session plays one game life: it starts the child on a pty and relays
// between it and a Controller until the child exits.
type Session struct {
	cfg    SessionConfig
	id     string
	logger *zap.Logger

	mu         sync.Mutex
	pty        PTY
	controller *Controller
	stopped    atomic.Bool
}

// NewSession creates a session. Nothing starts until Run.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Rows <= 0 {
		cfg.Rows = 24
	}
	if cfg.Cols <= 0 {
		cfg.Cols = 80
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Strategy == nil {
		cfg.Strategy = NewRandomMover(cfg.Rand)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	return &Session{
		cfg:    cfg,
		id:     id,
		logger: logger.With(zap.String("life", id)),
	}
}

// ID returns the life id used in logs and the journal
func (s *Session) ID() string {
	return s.id
}

// Controller returns the session's controller once Run has started
func (s *Session) Controller() *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller
}

// Run plays the life to the end. Stopping the session through Stop is not
// an error.
func (s *Session) Run() (*Result, error) {
	opts := RandomOptions(s.cfg.Rand, s.cfg.Options)
	optsFile, err := WriteOptionsFile("", opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := optsFile.Remove(); err != nil {
			s.logger.Warn("failed to remove options file", zap.Error(err))
		}
	}()

	p := s.cfg.PTY
	if p == nil {
		if p, err = NewPTY(); err != nil {
			return nil, err
		}
	}

	cmd := exec.Command(s.cfg.Binary, s.cfg.Args...)
	cmd.Env = append(os.Environ(), optsFile.Env())
	if err := p.Start(cmd, s.cfg.Rows, s.cfg.Cols); err != nil {
		return nil, err
	}
	defer p.Close()

	screen := NewScreen(s.cfg.Rows, s.cfg.Cols, NewEmulator(s.cfg.Rows, s.cfg.Cols))
	controller := NewController(screen, s.cfg.Strategy, s.logger)

	s.mu.Lock()
	s.pty = p
	s.controller = controller
	s.mu.Unlock()
	if s.stopped.Load() {
		p.Close()
	}

	started := time.Now()
	s.logger.Info("life started",
		zap.String("character", opts.Character),
		zap.String("gender", opts.Gender),
		zap.String("race", opts.Race),
		zap.String("align", opts.Align))

	if j := s.cfg.Journal; j != nil {
		if err := j.StartLife(journal.Life{
			ID:        s.id,
			Character: opts.Character,
			Gender:    opts.Gender,
			Race:      opts.Race,
			Align:     opts.Align,
			StartedAt: started,
		}); err != nil {
			s.logger.Warn("journal unavailable", zap.Error(err))
		} else {
			controller.SetTurnHook(s.recordTurn)
		}
	}

	relayCfg := s.cfg.Relay
	relayCfg.Logger = s.logger
	relay := NewRelay(p, controller, relayCfg)
	runErr := relay.Run()
	if s.stopped.Load() {
		runErr = nil
	}
	if err := p.Wait(); err != nil {
		s.logger.Debug("child exit status", zap.Error(err))
	}

	result := &Result{
		LifeID:  s.id,
		Options: opts,
		Turns:   controller.Turns(),
		Frames:  relay.Frames(),
		Died:    controller.Dead(),
		Message: strings.TrimRight(controller.Messages().Last(), " "),
		Status:  controller.Status(),
	}
	s.logger.Info("life ended",
		zap.Int("turns", result.Turns),
		zap.Bool("died", result.Died),
		zap.String("message", result.Message))

	if j := s.cfg.Journal; j != nil {
		if err := j.EndLife(journal.Life{
			ID:      s.id,
			EndedAt: time.Now(),
			Turns:   result.Turns,
			Died:    result.Died,
			Message: result.Message,
			Dlvl:    result.Status.Dlvl,
			HP:      result.Status.HP,
			HPMax:   result.Status.HPMax,
			Exp:     result.Status.Exp,
			Money:   result.Status.Money,
		}); err != nil {
			s.logger.Warn("failed to record life end", zap.Error(err))
		}
	}

	if runErr != nil && !errors.Is(runErr, ErrChildExited) {
		return result, fmt.Errorf("life %s: %w", s.id, runErr)
	}
	return result, runErr
}

// Stop ends a running session by closing the pty. Run then returns
// without error.
func (s *Session) Stop() error {
	s.stopped.Store(true)
	s.mu.Lock()
	p := s.pty
	s.mu.Unlock()
	if p == nil {
		return nil
	}
	return p.Close()
}

func (s *Session) recordTurn(t Turn) {
	err := s.cfg.Journal.RecordTurn(journal.Turn{
		LifeID:  s.id,
		Index:   t.Index,
		Kind:    t.Kind.String(),
		Command: t.Command.String(),
		Message: t.Message,
		Dlvl:    t.Status.Dlvl,
		HP:      t.Status.HP,
		HPMax:   t.Status.HPMax,
		At:      time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to record turn", zap.Int("turn", t.Index), zap.Error(err))
	}
}
