package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDecodeSnapshot(t *testing.T) {
	data := []byte(`{
		"grid_indices": [[0, 1, 2], [9, 10, 3]],
		"tokens": 12,
		"pending_bet": 2,
		"max_bet": 5,
		"seed": 42,
		"round": 3,
		"jokers": [{"name": "ignored"}]
	}`)

	s, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if len(s.GridIndices) != 2 || s.GridIndices[1][1] != 10 {
		t.Errorf("GridIndices = %v", s.GridIndices)
	}
	if s.Tokens != 12 || s.PendingBet != 2 || s.MaxBet != 5 || s.Seed != 42 || s.Round != 3 {
		t.Errorf("Decode() = %+v", s)
	}
	if !s.HasGrid() {
		t.Error("HasGrid() should be true")
	}
}

func TestDecodeErrorSnapshot(t *testing.T) {
	s, err := Decode([]byte(`{"error": "no_game"}`))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if s.Error != "no_game" || s.HasGrid() {
		t.Errorf("Decode() = %+v", s)
	}

	if _, err := Decode([]byte(`{"grid_indices": `)); err == nil {
		t.Error("Decode() should fail on truncated json")
	}
}

func TestHasGridEmptyColumns(t *testing.T) {
	s := &Snapshot{GridIndices: [][]int{{}, {}}}
	if s.HasGrid() {
		t.Error("HasGrid() should be false for empty columns")
	}
	var nilSnap *Snapshot
	if nilSnap.HasGrid() {
		t.Error("HasGrid() on nil should be false")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := &Snapshot{GridIndices: [][]int{{1, 2}}}
	c := s.Clone()
	c.GridIndices[0][0] = 7
	if s.GridIndices[0][0] != 1 {
		t.Error("Clone() shares grid storage")
	}
}

func TestRemoteErrorIs(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"no_game", ErrNoGame},
		{"max_bet_reached", ErrMaxBetReached},
		{"no_tokens", ErrNoTokens},
		{"no_bet_to_remove", ErrNoBetToRemove},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			var err error = &RemoteError{Op: OpSpin, Code: tt.code}
			if !errors.Is(err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.want)
			}
			wrapped := fmt.Errorf("wrapped: %w", err)
			var re *RemoteError
			if !errors.As(wrapped, &re) || re.Code != tt.code {
				t.Errorf("errors.As() failed for %v", wrapped)
			}
		})
	}

	unknown := &RemoteError{Op: OpSpin, Code: "bet_failed"}
	if errors.Is(unknown, ErrNoGame) {
		t.Error("unknown code should not match a sentinel")
	}
}

func frames() []*Snapshot {
	return []*Snapshot{
		{GridIndices: [][]int{{0, 1, 2}}, Tokens: 3, MaxBet: 2},
		{GridIndices: [][]int{{3, 4, 5}}, Tokens: 5},
	}
}

func TestCacheBridgeRequiresGame(t *testing.T) {
	c, err := NewCacheBridgeFrames(frames())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	for name, fn := range map[string]func(context.Context) (*Snapshot, error){
		"spin":        c.Spin,
		"insert":      c.InsertToken,
		"remove":      c.RemoveToken,
		"snapshot":    c.Snapshot,
		"start round": c.StartRound,
		"end round":   c.EndRound,
	} {
		s, err := fn(ctx)
		if !errors.Is(err, ErrNoGame) {
			t.Errorf("%s before NewGame: err = %v, expected ErrNoGame", name, err)
		}
		if s == nil || s.Error != "no_game" {
			t.Errorf("%s before NewGame: snapshot = %+v", name, s)
		}
	}
}

func TestCacheBridgeBetting(t *testing.T) {
	c, _ := NewCacheBridgeFrames(frames())
	ctx := context.Background()

	s, err := c.NewGame(ctx, 7)
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	if s.Tokens != 3 || s.MaxBet != 2 || s.Seed != 7 {
		t.Errorf("NewGame() = %+v", s)
	}

	if _, err := c.RemoveToken(ctx); !errors.Is(err, ErrNoBetToRemove) {
		t.Errorf("RemoveToken() with no bet: err = %v", err)
	}

	for i := 1; i <= 2; i++ {
		s, err = c.InsertToken(ctx)
		if err != nil || s.PendingBet != i {
			t.Fatalf("InsertToken() #%d = %+v, %v", i, s, err)
		}
	}
	s, err = c.InsertToken(ctx)
	if !errors.Is(err, ErrMaxBetReached) {
		t.Errorf("InsertToken() past max: err = %v", err)
	}
	if s.PendingBet != 2 {
		t.Errorf("PendingBet = %d after rejected insert, expected 2", s.PendingBet)
	}

	s, err = c.RemoveToken(ctx)
	if err != nil || s.PendingBet != 1 {
		t.Errorf("RemoveToken() = %+v, %v", s, err)
	}
}

func TestCacheBridgeNoTokens(t *testing.T) {
	c, _ := NewCacheBridgeFrames([]*Snapshot{{Tokens: 1, MaxBet: 5}})
	ctx := context.Background()
	_, _ = c.NewGame(ctx, 0)

	if _, err := c.InsertToken(ctx); err != nil {
		t.Fatalf("first InsertToken() failed: %v", err)
	}
	if _, err := c.InsertToken(ctx); !errors.Is(err, ErrNoTokens) {
		t.Errorf("InsertToken() without tokens: err = %v", err)
	}
}

func TestCacheBridgeCycles(t *testing.T) {
	c, _ := NewCacheBridgeFrames(frames())
	ctx := context.Background()
	_, _ = c.NewGame(ctx, 0)
	_, _ = c.InsertToken(ctx)

	want := []int{0, 3, 0}
	for i, w := range want {
		s, err := c.Spin(ctx)
		if err != nil {
			t.Fatalf("Spin() #%d failed: %v", i, err)
		}
		if s.GridIndices[0][0] != w {
			t.Errorf("Spin() #%d grid[0][0] = %d, expected %d", i, s.GridIndices[0][0], w)
		}
		if s.PendingBet != 0 {
			t.Errorf("Spin() #%d PendingBet = %d, expected 0", i, s.PendingBet)
		}
		if s.Round != i+1 {
			t.Errorf("Spin() #%d Round = %d, expected %d", i, s.Round, i+1)
		}
	}

	// second frame has no max_bet; the game's limit carries over
	s, _ := c.Snapshot(ctx)
	if s.MaxBet != 2 {
		t.Errorf("MaxBet = %d, expected 2", s.MaxBet)
	}
}

func TestCacheBridgeRounds(t *testing.T) {
	c, _ := NewCacheBridgeFrames(frames())
	ctx := context.Background()
	_, _ = c.NewGame(ctx, 0)

	steps := []struct {
		name    string
		call    func(context.Context) (*Snapshot, error)
		round   int
		inRound bool
	}{
		{"spin outside a round", c.Spin, 1, false},
		{"start round", c.StartRound, 2, true},
		{"spin inside round", c.Spin, 2, true},
		{"second spin inside round", c.Spin, 2, true},
		{"end round", c.EndRound, 2, false},
		{"end round again", c.EndRound, 2, false},
		{"spin after round", c.Spin, 3, false},
	}

	for _, st := range steps {
		s, err := st.call(ctx)
		if err != nil {
			t.Fatalf("%s: err = %v", st.name, err)
		}
		if s.Round != st.round || s.InRound != st.inRound {
			t.Errorf("%s: round %d in_round %v, expected %d/%v", st.name, s.Round, s.InRound, st.round, st.inRound)
		}
	}
}

func TestCacheBridgeRoundDropsBet(t *testing.T) {
	c, _ := NewCacheBridgeFrames(frames())
	ctx := context.Background()
	_, _ = c.NewGame(ctx, 0)

	for name, fn := range map[string]func(context.Context) (*Snapshot, error){
		"start": c.StartRound,
		"end":   c.EndRound,
	} {
		if _, err := c.InsertToken(ctx); err != nil {
			t.Fatalf("InsertToken() failed: %v", err)
		}
		s, err := fn(ctx)
		if err != nil || s.PendingBet != 0 {
			t.Errorf("%s round: PendingBet = %d, err = %v, expected 0", name, s.PendingBet, err)
		}
	}
}

func TestNewCacheBridgeFromDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("002.json", `{"grid_indices": [[2]], "tokens": 1}`)
	write("001.json", `{"grid_indices": [[1]], "tokens": 1}`)
	write("notes.txt", `ignored`)

	c, err := NewCacheBridge(dir)
	if err != nil {
		t.Fatalf("NewCacheBridge() failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", c.Len())
	}

	ctx := context.Background()
	_, _ = c.NewGame(ctx, 0)
	s, _ := c.Spin(ctx)
	if s.GridIndices[0][0] != 1 {
		t.Errorf("first frame grid = %v, expected lexical order", s.GridIndices)
	}
}

func TestNewCacheBridgeErrors(t *testing.T) {
	if _, err := NewCacheBridge(t.TempDir()); err == nil {
		t.Error("NewCacheBridge() should fail on empty dir")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCacheBridge(dir); err == nil {
		t.Error("NewCacheBridge() should fail on malformed snapshot")
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := NewCacheBridgeFrames(frames())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewRouter(c, log.New(io.Discard)))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClientRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	client := NewHTTPClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	if _, err := client.Spin(ctx); !errors.Is(err, ErrNoGame) {
		t.Errorf("Spin() before NewGame: err = %v, expected ErrNoGame", err)
	}

	s, err := client.NewGame(ctx, 99)
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	if s.Seed != 99 {
		t.Errorf("Seed = %d, expected 99", s.Seed)
	}

	s, err = client.InsertToken(ctx)
	if err != nil || s.PendingBet != 1 {
		t.Errorf("InsertToken() = %+v, %v", s, err)
	}
	s, err = client.RemoveToken(ctx)
	if err != nil || s.PendingBet != 0 {
		t.Errorf("RemoveToken() = %+v, %v", s, err)
	}
	if _, err := client.RemoveToken(ctx); !errors.Is(err, ErrNoBetToRemove) {
		t.Errorf("RemoveToken() with no bet: err = %v", err)
	}

	s, err = client.Spin(ctx)
	if err != nil {
		t.Fatalf("Spin() failed: %v", err)
	}
	if !s.HasGrid() || s.GridIndices[0][2] != 2 {
		t.Errorf("Spin() grid = %v", s.GridIndices)
	}

	s, err = client.Snapshot(ctx)
	if err != nil || s.Round != 1 {
		t.Errorf("Snapshot() = %+v, %v", s, err)
	}
}

func TestHTTPClientRounds(t *testing.T) {
	srv := newTestServer(t)
	client := NewHTTPClient(srv.URL, time.Second)
	ctx := context.Background()

	if _, err := client.StartRound(ctx); !errors.Is(err, ErrNoGame) {
		t.Errorf("StartRound() before NewGame: err = %v, expected ErrNoGame", err)
	}
	_, _ = client.NewGame(ctx, 1)

	s, err := client.StartRound(ctx)
	if err != nil || s.Round != 1 || !s.InRound {
		t.Fatalf("StartRound() = %+v, %v", s, err)
	}
	if s, _ = client.Spin(ctx); s.Round != 1 {
		t.Errorf("Spin() inside round: Round = %d, expected 1", s.Round)
	}
	s, err = client.EndRound(ctx)
	if err != nil || s.InRound {
		t.Errorf("EndRound() = %+v, %v", s, err)
	}
}

func TestHTTPClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second).Spin(context.Background())
	if err == nil {
		t.Fatal("Spin() should fail on 503")
	}
	var re *RemoteError
	if errors.As(err, &re) {
		t.Error("transport failure should not be a RemoteError")
	}
}

func TestHTTPClientCancelled(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHTTPClient(srv.URL, time.Second).Snapshot(ctx); err == nil {
		t.Error("Snapshot() should fail with cancelled context")
	}
}

func TestRouterRejectsBadSeed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/new_game?seed=abc", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", resp.StatusCode)
	}
}

type failingBridge struct{ CacheBridge }

func (*failingBridge) Spin(context.Context) (*Snapshot, error) {
	return nil, errors.New("backend exploded")
}

func TestRouterTransportError(t *testing.T) {
	fb := &failingBridge{}
	srv := httptest.NewServer(NewRouter(fb, log.New(io.Discard)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/spin", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, expected 502", resp.StatusCode)
	}
}
