// Package actions registers the vSphere and NETLAB+ operations the batch
// interpreter dispatches to. Handlers are thin: they map resolved option
// values onto management operations and let the session do the talking.
package actions

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kalgynirae/netlaborious/internal/batch"
	"github.com/kalgynirae/netlaborious/internal/config"
	"github.com/kalgynirae/netlaborious/internal/logger"
	"github.com/kalgynirae/netlaborious/internal/session"
)

// Actions binds the action handlers to their collaborators.
type Actions struct {
	Session session.Session
	Config  *config.Config
	Log     logger.Logger
	Out     io.Writer // inventory listings land here
}

// New creates the action set. A nil config gets defaults; a nil logger gets
// the package default.
func New(sess session.Session, cfg *config.Config, log logger.Logger) *Actions {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}
	return &Actions{Session: sess, Config: cfg, Log: log, Out: os.Stdout}
}

// Register adds every action to the registry.
func (a *Actions) Register(reg *batch.Registry) {
	reg.MustRegister(batch.Descriptor{
		Name:        "upload",
		Description: "Upload an OVF template to a host and snapshot it",
		Required:    []string{"ovf", "host"},
		Optional:    []string{"folder", "network", "provisioning", "snapshot"},
		Run:         a.upload,
	})
	reg.MustRegister(batch.Descriptor{
		Name:        "clone",
		Description: "Clone an existing VM to another host",
		Required:    []string{"vm", "dest_host"},
		Optional:    []string{"folder", "snapshot"},
		Run:         a.clone,
	})
	reg.MustRegister(batch.Descriptor{
		Name:        "snapshot",
		Description: "Create a named snapshot of a VM",
		Required:    []string{"vm", "snapshot"},
		Run:         a.snapshot,
	})
	reg.MustRegister(batch.Descriptor{
		Name:        "revert",
		Description: "Revert a VM to a named snapshot",
		Required:    []string{"vm", "snapshot"},
		Run:         a.revert,
	})
	reg.MustRegister(batch.Descriptor{
		Name:        "rmsnapshot",
		Description: "Delete a named snapshot of a VM",
		Required:    []string{"vm", "snapshot"},
		Run:         a.rmsnapshot,
	})
	reg.MustRegister(batch.Descriptor{
		Name:        "mkpod",
		Description: "Create a NETLAB+ pod and map it to a VM",
		Required:    []string{"name", "vm"},
		Run:         a.mkpod,
	})
	reg.MustRegister(batch.Descriptor{
		Name:        "rmpod",
		Description: "Delete a NETLAB+ pod",
		Required:    []string{"name"},
		Run:         a.rmpod,
	})
	reg.MustRegister(batch.Descriptor{
		Name:        "listvms",
		Description: "List VMs in the inventory",
		Optional:    []string{"host"},
		Run:         a.listvms,
	})
}

func (a *Actions) upload(ctx context.Context, required []string, optional map[string]string) error {
	ovf, host := required[0], required[1]

	folder := a.Config.Upload.Folder
	network := a.Config.Upload.Network
	provisioning := a.Config.Upload.Provisioning
	if v, ok := optional["folder"]; ok {
		folder = v
	}
	if v, ok := optional["network"]; ok {
		network = v
	}
	if v, ok := optional["provisioning"]; ok {
		provisioning = v
	}

	a.Log.Debug("uploading OVF %s to host %s (folder %q, network %q, provisioning %s)",
		ovf, host, folder, network, provisioning)

	argv := []string{ovf, host}
	argv = appendOpt(argv, "folder", folder)
	argv = appendOpt(argv, "network", network)
	argv = appendOpt(argv, "provisioning", provisioning)
	if _, err := a.Session.Invoke(ctx, "upload", argv...); err != nil {
		return err
	}

	// The original workflow snapshots every freshly uploaded template.
	if name, ok := optional["snapshot"]; ok {
		_, err := a.Session.Invoke(ctx, "snapshot", vmNameFromOVF(ovf), name)
		return err
	}
	return nil
}

func (a *Actions) clone(ctx context.Context, required []string, optional map[string]string) error {
	vm, destHost := required[0], required[1]
	a.Log.Debug("cloning VM %s to host %s", vm, destHost)

	argv := []string{vm, destHost}
	argv = appendOpt(argv, "folder", optional["folder"])
	if _, err := a.Session.Invoke(ctx, "clone", argv...); err != nil {
		return err
	}

	if name, ok := optional["snapshot"]; ok {
		_, err := a.Session.Invoke(ctx, "snapshot", vm, name)
		return err
	}
	return nil
}

func (a *Actions) snapshot(ctx context.Context, required []string, optional map[string]string) error {
	vm, name := required[0], required[1]
	a.Log.Debug("snapshotting VM %s as %q", vm, name)
	_, err := a.Session.Invoke(ctx, "snapshot", vm, name)
	return err
}

func (a *Actions) revert(ctx context.Context, required []string, optional map[string]string) error {
	vm, name := required[0], required[1]
	a.Log.Debug("reverting VM %s to snapshot %q", vm, name)
	_, err := a.Session.Invoke(ctx, "revert", vm, name)
	return err
}

func (a *Actions) rmsnapshot(ctx context.Context, required []string, optional map[string]string) error {
	vm, name := required[0], required[1]
	a.Log.Debug("deleting snapshot %q of VM %s", name, vm)
	_, err := a.Session.Invoke(ctx, "rmsnapshot", vm, name)
	return err
}

func (a *Actions) mkpod(ctx context.Context, required []string, optional map[string]string) error {
	name, vm := required[0], required[1]
	a.Log.Debug("creating pod %s mapped to VM %s", name, vm)
	_, err := a.Session.Invoke(ctx, "mkpod", name, vm)
	return err
}

func (a *Actions) rmpod(ctx context.Context, required []string, optional map[string]string) error {
	name := required[0]
	a.Log.Debug("deleting pod %s", name)
	_, err := a.Session.Invoke(ctx, "rmpod", name)
	return err
}

func (a *Actions) listvms(ctx context.Context, required []string, optional map[string]string) error {
	argv := appendOpt(nil, "host", optional["host"])
	out, err := a.Session.Invoke(ctx, "listvms", argv...)
	if err != nil {
		return err
	}
	if len(out) > 0 {
		fmt.Fprint(a.Out, string(out))
	}
	return nil
}

// appendOpt appends a --flag value pair when the value is non-empty.
func appendOpt(argv []string, name, value string) []string {
	if value == "" {
		return argv
	}
	return append(argv, "--"+name, value)
}

// vmNameFromOVF derives the inventory name a template lands under from its
// OVF path: the base name without extension.
func vmNameFromOVF(ovf string) string {
	base := ovf
	for i := len(ovf) - 1; i >= 0; i-- {
		if ovf[i] == '/' {
			base = ovf[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}
