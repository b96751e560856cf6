package cli

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/kalgynirae/netlaborious/internal/actions"
	"github.com/kalgynirae/netlaborious/internal/batch"
	"github.com/kalgynirae/netlaborious/internal/config"
	"github.com/kalgynirae/netlaborious/internal/errors"
	"github.com/kalgynirae/netlaborious/internal/logger"
	"github.com/kalgynirae/netlaborious/internal/session"
	"github.com/kalgynirae/netlaborious/internal/ui"
)

// Connection flags, overriding the config's vsphere section.
var (
	vshostFlag   string
	vsuserFlag   string
	vsportFlag   int
	insecureFlag bool
)

// buildRunner assembles the interpreter pipeline for run and batch: config,
// session (recording under --dry-run), registered actions, runner. The
// returned closer releases the session.
func buildRunner() (*batch.Runner, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log := logger.Default()

	var sess session.Session
	if dryRunFlag {
		sess = session.NewRecording(log)
	} else {
		sess = newLazySession(cfg, log)
	}

	acts := actions.New(sess, cfg, log)
	reg := batch.NewRegistry()
	acts.Register(reg)

	runner := batch.NewRunner(reg)
	runner.Comment = cfg.CommentRune()

	return runner, sess.Close, nil
}

// lazySession defers the SSH dial until an action actually needs the
// management host. Validation-only runs never connect or prompt.
type lazySession struct {
	mu     sync.Mutex
	client *session.Client
	cfg    *config.Config
	log    logger.Logger
}

func newLazySession(cfg *config.Config, log logger.Logger) *lazySession {
	return &lazySession{cfg: cfg, log: log}
}

func (s *lazySession) connect() (*session.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	host := vshostFlag
	if host == "" {
		host = s.cfg.VSphere.Host
	}
	if host == "" {
		return nil, errors.New(errors.ErrConfig,
			"No management host configured",
			"Set vsphere.host in .netlab.yaml or pass --vshost")
	}

	user := vsuserFlag
	if user == "" {
		user = s.cfg.VSphere.User
	}

	port := vsportFlag
	if port == 0 {
		port = s.cfg.VSphere.Port
	}

	var spin *ui.Spinner
	if ui.IsTerminalFile(os.Stdout) {
		spin = ui.NewSpinner(fmt.Sprintf("Connecting to %s", host))
		spin.Start()
	}

	// The password prompt shares the terminal with the spinner.
	password := ui.PasswordFunc(user)
	promptingPassword := func() (string, error) {
		if spin != nil {
			spin.Stop()
		}
		return password()
	}

	client, err := session.Dial(host, session.DialOptions{
		User:            user,
		Port:            port,
		Password:        promptingPassword,
		InsecureHostKey: insecureFlag,
		Log:             s.log,
	})
	if spin != nil {
		if err != nil {
			spin.Fail()
		} else {
			spin.Success()
		}
	}
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

func (s *lazySession) Invoke(ctx context.Context, op string, args ...string) ([]byte, error) {
	client, err := s.connect()
	if err != nil {
		return nil, err
	}
	return client.Invoke(ctx, op, args...)
}

func (s *lazySession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

var _ session.Session = (*lazySession)(nil)

func init() {
	rootCmd.PersistentFlags().StringVar(&vshostFlag, "vshost", "", "vSphere management host")
	rootCmd.PersistentFlags().StringVar(&vsuserFlag, "vsuser", "", "vSphere username")
	rootCmd.PersistentFlags().IntVar(&vsportFlag, "vsport", 0, "vSphere management port")
	rootCmd.PersistentFlags().BoolVar(&insecureFlag, "insecure-host-key", false, "skip known_hosts verification of the management host")
}
