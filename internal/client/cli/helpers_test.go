package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/backoff"
	"github.com/dmitrijs2005/finkeeper/internal/client/backup"
	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/config"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/services"
	"github.com/dmitrijs2005/finkeeper/internal/client/syncer"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"github.com/stretchr/testify/require"
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

// fakeRemote keeps server-side records in memory.
type fakeRemote[T services.Entity] struct {
	mu     sync.Mutex
	err    error
	seq    int
	items  map[string]T
	create int
}

func newFakeRemote[T services.Entity]() *fakeRemote[T] {
	return &fakeRemote[T]{items: map[string]T{}}
}

func (f *fakeRemote[T]) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeRemote[T]) CreateRemote(_ context.Context, e *T) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.create++
	if f.err != nil {
		return "", f.err
	}
	f.seq++
	id := fmt.Sprintf("r-%d", f.seq)
	f.items[id] = *e
	return id, nil
}

func (f *fakeRemote[T]) UpdateRemote(_ context.Context, id string, e *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.items[id] = *e
	return nil
}

func (f *fakeRemote[T]) DeleteRemote(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRemote[T]) ListRemote(context.Context) ([]models.RemoteRecord[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.RemoteRecord[T], 0, len(f.items))
	for id, e := range f.items {
		out = append(out, models.RemoteRecord[T]{RemoteID: id, Entity: e})
	}
	return out, nil
}

type fakeAuth struct {
	regUser  string
	regPass  string
	regErr   error
	loginErr error
	pingErr  error
	logouts  int
	token    string
	user     string
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, string(pass)
	return f.regErr
}

func (f *fakeAuth) Login(_ context.Context, user string, _ []byte) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.user, f.token = user, "tok"
	return nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	f.user, f.token = "", ""
	return nil
}

func (f *fakeAuth) AccessToken(context.Context) (string, error) { return f.token, nil }
func (f *fakeAuth) Username(context.Context) (string, error)    { return f.user, nil }
func (f *fakeAuth) Ping(context.Context) error                  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error                 { return nil }

type testApp struct {
	*App
	out  *bytes.Buffer
	auth *fakeAuth
	cats *fakeRemote[models.Category]
	txs  *fakeRemote[models.Transaction]
}

// newTestApp wires an App over a private in-memory database and fake
// remotes. Prompt answers are taken from lines in order.
func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := logging.Nop()
	policy := backoff.Policy{Base: time.Second, Cap: time.Minute, MaxAttempts: 3}

	catRemote := newFakeRemote[models.Category]()
	txRemote := newFakeRemote[models.Transaction]()
	cats := services.NewCategoryRepository(db, catRemote, policy, logger)
	txs := services.NewTransactionRepository(db, txRemote, policy, logger)
	worker := syncer.NewWorker(db, time.Minute, syncer.DefaultBatchSize, logger, cats, txs)
	cats.SetNotifier(worker.Notify)
	txs.SetNotifier(worker.Notify)

	auth := &fakeAuth{}
	out := &bytes.Buffer{}

	app := &App{
		config:       &config.Config{},
		logger:       logger,
		db:           db,
		authService:  auth,
		categories:   cats,
		transactions: txs,
		syncer:       worker,
		backup:       backup.NewService(db, backup.Config{}, logger),
		mode:         ModeOffline,
		reader:       readerFromLines(lines...),
		out:          out,
	}
	return &testApp{App: app, out: out, auth: auth, cats: catRemote, txs: txRemote}
}

func (ta *testApp) feed(lines ...string) {
	ta.reader = readerFromLines(lines...)
	ta.out.Reset()
}
