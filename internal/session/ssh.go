package session

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kevinburke/ssh_config"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/kalgynirae/netlaborious/internal/errors"
	"github.com/kalgynirae/netlaborious/internal/logger"
	"github.com/kalgynirae/netlaborious/internal/util"
)

// ManagementTool is the CLI invoked on the management host for every
// operation. Overridable for nonstandard installs via NETLAB_TOOL.
const ManagementTool = "vsphere-tool"

// DialOptions configures the SSH connection to the management host.
type DialOptions struct {
	// User overrides the user resolved from user@host or ~/.ssh/config.
	User string

	// Port overrides the port resolved from host:port or ~/.ssh/config.
	// Zero means resolved or default 22.
	Port int

	// Timeout bounds the TCP dial. Zero means 10 seconds.
	Timeout time.Duration

	// Password is called when agent and key auth are unavailable, so the
	// prompt only happens when it is actually needed. Nil disables
	// password auth.
	Password func() (string, error)

	// InsecureHostKey skips known_hosts verification of the server key.
	// Off by default; only for lab hosts whose keys churn.
	InsecureHostKey bool

	Log logger.Logger
}

// Client is a Session backed by an SSH connection to the management host.
type Client struct {
	conn    *ssh.Client
	host    string // original host/alias used to connect
	address string // resolved host:port
	tool    string
	log     logger.Logger
}

// Dial connects to the management host. The host can be an SSH config
// alias, a hostname, user@hostname, or hostname:port; connection settings
// are resolved from ~/.ssh/config when available.
func Dial(host string, opts DialOptions) (*Client, error) {
	log := opts.Log
	if log == nil {
		log = logger.Default()
	}

	settings := resolveSettings(host)
	if opts.User != "" {
		settings.user = opts.User
	}
	if opts.Port != 0 {
		settings.port = fmt.Sprintf("%d", opts.Port)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	auth := authMethods(settings, opts.Password)
	if len(auth) == 0 {
		return nil, errors.New(errors.ErrSession,
			"No SSH auth methods available for "+host,
			"Check your keys are loaded: ssh-add -l")
	}

	hostKeys := ssh.InsecureIgnoreHostKey()
	if opts.InsecureHostKey {
		log.Warn("host key verification disabled for %s", host)
	} else {
		verify, err := hostKeyCallback(filepath.Join(homeDir(), ".ssh", "known_hosts"))
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrSession,
				"Can't load ~/.ssh/known_hosts",
				"Check permissions on your ~/.ssh directory")
		}
		hostKeys = verify
	}

	config := &ssh.ClientConfig{
		User:            settings.user,
		Auth:            auth,
		HostKeyCallback: hostKeys,
		Timeout:         timeout,
	}

	address := settings.address()
	log.Debug("dialing management host %s at %s as %s", host, address, settings.user)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSession,
			fmt.Sprintf("Can't reach '%s' at %s", host, address),
			"Make sure the management host is reachable: ping "+settings.hostname)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		var mismatch *HostKeyMismatchError
		if stderrors.As(err, &mismatch) {
			return nil, errors.New(errors.ErrSession, mismatch.Error(), mismatch.Suggestion())
		}
		var unknown *HostKeyUnknownError
		if stderrors.As(err, &unknown) {
			return nil, errors.New(errors.ErrSession, unknown.Error(), unknown.Suggestion())
		}
		return nil, errors.WrapWithCode(err, errors.ErrSession,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", host),
			"Auth failed. Check your keys are loaded: ssh-add -l")
	}

	tool := ManagementTool
	if override := os.Getenv("NETLAB_TOOL"); override != "" {
		tool = override
	}

	return &Client{
		conn:    ssh.NewClient(sshConn, chans, reqs),
		host:    host,
		address: address,
		tool:    tool,
		log:     log,
	}, nil
}

// Host returns the original host/alias used to connect.
func (c *Client) Host() string { return c.host }

// Address returns the resolved host:port address.
func (c *Client) Address() string { return c.address }

// Invoke runs one management operation on the remote host. The operation
// name and arguments are shell-quoted into a single command line; stdout is
// returned, stderr feeds the error on failure.
func (c *Client) Invoke(ctx context.Context, op string, args ...string) ([]byte, error) {
	sess, err := c.conn.NewSession()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSession,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer sess.Close()

	var stdout, stderr bytes.Buffer
	sess.Stdout = &stdout
	sess.Stderr = &stderr

	cmd := c.tool + " " + util.ShellQuote(op)
	if len(args) > 0 {
		cmd += " " + strings.Join(util.ShellQuoteAll(args), " ")
	}
	c.log.Debug("invoking on %s: %s", c.host, cmd)

	done := make(chan error, 1)
	go func() {
		done <- sess.Run(cmd)
	}()

	select {
	case <-ctx.Done():
		sess.Close()
		<-done
		return nil, errors.WrapWithCode(ctx.Err(), errors.ErrSession,
			fmt.Sprintf("Operation %s canceled", op),
			"")
	case err = <-done:
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if stderrors.As(err, &exitErr) {
			detail := strings.TrimSpace(stderr.String())
			if detail == "" {
				detail = fmt.Sprintf("exit status %d", exitErr.ExitStatus())
			}
			return nil, errors.New(errors.ErrExec,
				fmt.Sprintf("%s failed: %s", op, detail),
				"")
		}
		return nil, errors.WrapWithCode(err, errors.ErrSession,
			fmt.Sprintf("Failed to run %s on %s", op, c.host),
			"Check if "+c.tool+" is installed on the management host.")
	}

	return stdout.Bytes(), nil
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// settings holds resolved SSH connection parameters.
type settings struct {
	hostname string
	port     string
	user     string
	identity string
}

func (s *settings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

// resolveSettings parses the host string and resolves the rest from
// ~/.ssh/config.
func resolveSettings(host string) *settings {
	s := &settings{
		port: "22",
		user: currentUser(),
	}

	if atIdx := strings.Index(host, "@"); atIdx != -1 {
		s.user = host[:atIdx]
		host = host[atIdx+1:]
	}

	if colonIdx := strings.LastIndex(host, ":"); colonIdx != -1 {
		potentialPort := host[colonIdx+1:]
		if potentialPort != "" && strings.Trim(potentialPort, "0123456789") == "" {
			s.port = potentialPort
			host = host[:colonIdx]
		}
	}

	s.hostname = host

	content, err := os.ReadFile(filepath.Join(homeDir(), ".ssh", "config"))
	if err != nil {
		return s
	}
	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return s
	}

	if hostname, _ := cfg.Get(host, "HostName"); hostname != "" {
		s.hostname = hostname
	}
	if port, _ := cfg.Get(host, "Port"); port != "" {
		s.port = port
	}
	if user, _ := cfg.Get(host, "User"); user != "" {
		s.user = user
	}
	if identity, _ := cfg.Get(host, "IdentityFile"); identity != "" {
		s.identity = expandPath(identity)
	}

	return s
}

// authMethods builds the auth chain: agent first, then key files, then the
// password callback as last resort.
func authMethods(s *settings, password func() (string, error)) []ssh.AuthMethod {
	var methods []ssh.AuthMethod

	if agentAuth := sshAgentAuth(); agentAuth != nil {
		methods = append(methods, agentAuth)
	}

	keyPaths := []string{
		s.identity,
		filepath.Join(homeDir(), ".ssh", "id_ed25519"),
		filepath.Join(homeDir(), ".ssh", "id_rsa"),
		filepath.Join(homeDir(), ".ssh", "id_ecdsa"),
	}
	seen := make(map[string]bool)
	for _, keyPath := range keyPaths {
		if keyPath == "" || seen[keyPath] {
			continue
		}
		seen[keyPath] = true
		if keyAuth := keyFileAuth(keyPath); keyAuth != nil {
			methods = append(methods, keyAuth)
		}
	}

	if password != nil {
		methods = append(methods, ssh.PasswordCallback(password))
	}

	return methods
}

// sshAgentAuth returns an auth method using the SSH agent, or nil when no
// agent is available or it has no keys. An empty agent placed before other
// methods causes auth failures.
func sshAgentAuth() ssh.AuthMethod {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil
	}

	client := agent.NewClient(conn)
	signers, err := client.Signers()
	if err != nil || len(signers) == 0 {
		conn.Close()
		return nil
	}

	return ssh.PublicKeysCallback(client.Signers)
}

// HostKeyMismatchError reports a server key that contradicts known_hosts.
type HostKeyMismatchError struct {
	Hostname     string
	ReceivedType string
	KnownHosts   string
	Want         []knownhosts.KnownKey
}

func (e *HostKeyMismatchError) Error() string {
	return fmt.Sprintf("host key mismatch for %s: server sent %s key", e.Hostname, e.ReceivedType)
}

// Suggestion returns the steps to reconcile known_hosts with the server.
func (e *HostKeyMismatchError) Suggestion() string {
	host := bareHostname(e.Hostname)

	var wantTypes []string
	for _, k := range e.Want {
		wantTypes = append(wantTypes, k.Key.Type())
	}
	wantStr := "unknown"
	if len(wantTypes) > 0 {
		wantStr = strings.Join(wantTypes, ", ")
	}

	return fmt.Sprintf(
		"The server's host key doesn't match what's in known_hosts.\n"+
			"  Known types: %s\n"+
			"  Server sent: %s\n\n"+
			"  To update known_hosts with all key types:\n"+
			"    ssh-keyscan -t rsa,ecdsa,ed25519 %s >> %s\n\n"+
			"  Or remove the old entry:\n"+
			"    ssh-keygen -R %s",
		wantStr, e.ReceivedType, host, e.KnownHosts, host)
}

// HostKeyUnknownError reports a host with no known_hosts entry at all.
type HostKeyUnknownError struct {
	Hostname   string
	KnownHosts string
}

func (e *HostKeyUnknownError) Error() string {
	return fmt.Sprintf("host %s isn't in known_hosts", e.Hostname)
}

// Suggestion returns the steps to record the host key first.
func (e *HostKeyUnknownError) Suggestion() string {
	host := bareHostname(e.Hostname)
	return fmt.Sprintf(
		"Record the host key first:\n"+
			"  ssh -o StrictHostKeyChecking=accept-new %s exit\n"+
			"or skip verification for this run with --insecure-host-key.",
		host)
}

func bareHostname(hostname string) string {
	if h, _, err := net.SplitHostPort(hostname); err == nil {
		return h
	}
	return hostname
}

// hostKeyCallback verifies server keys against known_hosts. A missing file
// is created empty so first connections get the unknown-host error instead
// of a load failure.
func hostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	if _, err := os.Stat(knownHostsPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(knownHostsPath), 0700); err != nil {
			return nil, err
		}
		if err := os.WriteFile(knownHostsPath, []byte{}, 0600); err != nil {
			return nil, err
		}
	}

	verify, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, err
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := verify(hostname, remote, key)
		var keyErr *knownhosts.KeyError
		if stderrors.As(err, &keyErr) {
			if len(keyErr.Want) > 0 {
				return &HostKeyMismatchError{
					Hostname:     hostname,
					ReceivedType: key.Type(),
					KnownHosts:   knownHostsPath,
					Want:         keyErr.Want,
				}
			}
			return &HostKeyUnknownError{Hostname: hostname, KnownHosts: knownHostsPath}
		}
		return err
	}, nil
}

// keyFileAuth returns an auth method for a private key file, or nil when
// the file is missing, unreadable, or passphrase-protected.
func keyFileAuth(keyPath string) ssh.AuthMethod {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil
	}
	return ssh.PublicKeys(signer)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "root"
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
