package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"todo/internal/api"
	"todo/internal/config"
	"todo/internal/domain"
	"todo/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// harness runs the command tree against a fake store shared across runs.
type harness struct {
	t       *testing.T
	store   *testutil.FakeStore
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	opened  int
	cfgFile string
	factory ContainerFactory
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	previous := timeNow
	timeNow = func() time.Time { return fixedNow }
	t.Cleanup(func() { timeNow = previous })

	store := testutil.NewFakeStore()
	store.Now = func() time.Time { return fixedNow.Add(-2 * time.Hour) }

	h := &harness{
		t:       t,
		store:   store,
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
		cfgFile: filepath.Join(t.TempDir(), "missing.toml"),
	}
	h.factory = func(cfg *config.Config) (*api.Container, error) {
		h.opened++
		return api.NewWithStore(cfg, h.store, nil), nil
	}
	return h
}

// run executes one command line and returns what it printed on stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	h.out.Reset()
	h.errOut.Reset()

	root := NewRootCommand(
		WithLoader(config.NewLoader().WithConfigFile(h.cfgFile).WithEnvFile("")),
		WithContainerFactory(h.factory),
		WithStreams(IOStreams{In: strings.NewReader(""), Out: h.out, ErrOut: h.errOut}),
	)
	root.Command().SetArgs(args)

	err := root.Execute()
	return h.out.String(), err
}

func (h *harness) seed(tasks ...*domain.Task) {
	h.store.Seed(tasks...)
}

func strPtr(s string) *string {
	return &s
}

func seedTask(id string, title string, completed bool) *domain.Task {
	return &domain.Task{
		ID:          uuid.MustParse(id),
		Title:       title,
		IsCompleted: completed,
		DateCreated: fixedNow.Add(-2 * time.Hour),
	}
}

const (
	idMilk    = "aaaa1111-0000-4000-8000-000000000001"
	idRent    = "aaaa2222-0000-4000-8000-000000000002"
	idDentist = "bbbb3333-0000-4000-8000-000000000003"
)

// seedMixed stores a completed task between two incomplete ones.
func (h *harness) seedMixed() {
	milk := seedTask(idMilk, "Buy milk", false)
	milk.Comment = strPtr("2 litres")
	h.seed(
		milk,
		seedTask(idRent, "Pay rent", true),
		seedTask(idDentist, "Book dentist", false),
	)
}

func mustUUID(s string) uuid.UUID {
	return uuid.MustParse(s)
}
