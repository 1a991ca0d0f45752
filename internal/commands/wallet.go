package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/mywallet-dev/mywallet/internal/activitylog"
	"github.com/mywallet-dev/mywallet/internal/config"
	"github.com/mywallet-dev/mywallet/internal/credential"
	"github.com/mywallet-dev/mywallet/internal/envelope"
	"github.com/mywallet-dev/mywallet/internal/gitops"
	"github.com/mywallet-dev/mywallet/internal/logger"
	"github.com/mywallet-dev/mywallet/internal/model"
	"github.com/mywallet-dev/mywallet/internal/prefs"
	"github.com/mywallet-dev/mywallet/internal/store"
)

const (
	prefsFile     = "preferences.yaml"
	credentialDir = ".mywallet"
)

// wallet bundles everything a command needs from an initialized wallet directory.
type wallet struct {
	root  string
	cfg   *config.Config
	env   config.Env
	log   *slog.Logger
	prefs *prefs.Store
	data  *store.Store
	creds *credential.FileStore
	codec *envelope.Codec
}

func openWallet(dir string) (*wallet, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s is not a wallet (run mywallet init): %w", root, err)
		}
		return nil, err
	}
	env, err := config.LoadEnv(root)
	if err != nil {
		return nil, err
	}
	env.Apply(cfg)

	log := logger.Init(cfg.Log.Level)

	ps, err := prefs.Load(filepath.Join(root, prefsFile))
	if err != nil {
		return nil, err
	}
	codec, err := envelope.NewCodec(cfg.Backup.KDF)
	if err != nil {
		return nil, fmt.Errorf("backup.kdf: %w", err)
	}

	return &wallet{
		root:  root,
		cfg:   cfg,
		env:   env,
		log:   log,
		prefs: ps,
		data:  store.New(root, ps),
		creds: credential.NewFileStore(root),
		codec: codec,
	}, nil
}

func (w *wallet) gate() *credential.Gate {
	return credential.NewGate(w.creds, w.codec)
}

// pin returns the flag value, falling back to MYWALLET_PIN.
func (w *wallet) pin(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if w.env.PIN != "" {
		return w.env.PIN, nil
	}
	return "", fmt.Errorf("no PIN given: use --pin or set %s", config.EnvPIN)
}

// commit records changed paths in git when auto-commit is on. Returns the
// short hash, or "" when nothing was committed.
func (w *wallet) commit(message string, paths ...string) string {
	if !w.cfg.Git.AutoCommit || !gitops.IsRepo(w.root) {
		return ""
	}
	author := gitops.Author{Name: w.cfg.Git.AuthorName, Email: w.cfg.Git.AuthorEmail}
	hash, err := gitops.CommitPaths(w.root, message, author, paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: git commit failed: %v\n", err)
		return ""
	}
	return hash
}

// record appends one activity log entry; failures only warn.
func (w *wallet) record(flowID string, action activitylog.Action, domains []model.Domain, details, hash string) {
	e := activitylog.Entry{
		Timestamp:  time.Now(),
		FlowID:     flowID,
		Action:     action,
		Domains:    domains,
		Details:    details,
		CommitHash: hash,
	}
	if err := activitylog.Append(w.root, e); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write activity log: %v\n", err)
	}
}

// soundNotifier reports flow events with the user's sound settings.
type soundNotifier struct {
	prefs *prefs.Store
	log   *slog.Logger
}

func (n soundNotifier) Notify(kind prefs.ActivityKind) {
	s := n.prefs.Preferences().Sound(kind)
	if !s.Enabled {
		return
	}
	n.log.Debug("play sound", "activity", kind, "volume", s.Volume)
}

func (w *wallet) notifier() soundNotifier {
	return soundNotifier{prefs: w.prefs, log: w.log}
}

// signalContext carries the wallet logger and is cancelled on Ctrl-C so a
// running flow can be abandoned.
func (w *wallet) signalContext() (context.Context, context.CancelFunc) {
	ctx := logger.ToContext(context.Background(), w.log)
	return signal.NotifyContext(ctx, os.Interrupt)
}
