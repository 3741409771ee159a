package cli

import (
	"bytes"
	"context"
	"testing"

	"rconsh/internal/config"
	"rconsh/internal/log"
	"rconsh/internal/storage"
	"rconsh/internal/ui"
)

const testListing = "/gamemode <mode> [<target>]/gamerule <rule> [<value>]" +
	"/time (add|query|set)/teleport <destination>/tp -> teleport/say <message>"

// fakeRemote answers commands from canned responses and records them.
type fakeRemote struct {
	responses map[string]string
	errs      map[string]error
	sent      []string
	closed    bool
}

func (f *fakeRemote) Command(ctx context.Context, cmd string) (string, error) {
	f.sent = append(f.sent, cmd)
	if err, ok := f.errs[cmd]; ok {
		return "", err
	}
	return f.responses[cmd], nil
}

func (f *fakeRemote) Close() error {
	f.closed = true
	return nil
}

// newTestApp returns an App writing to out, with storage in a temp dir
// when withStore is set.
func newTestApp(t *testing.T, out *bytes.Buffer, withStore bool) *App {
	t.Helper()
	cfg := config.Default(t.TempDir())
	logger := log.NewDiscardLogger()
	t.Cleanup(func() { logger.Close() })

	app := &App{cfg: cfg, logger: logger, ui: ui.NewUI(out, false)}
	if withStore {
		store, err := storage.NewStorage(cfg, logger)
		if err != nil {
			t.Fatalf("NewStorage: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		app.store = store
	}
	return app
}
