package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/platform/web"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagWSGame      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH and websocket servers",
	Long: `Start servers that let remote players play Snake.

The SSH server gives each connection its own session with a board picker
menu. The websocket server plays one game per connection at /ws and serves
the leaderboard at /api/scores. Scores are stored per-server (all players
share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # SSH on :23234 with auto-generated key
  arcade serve --ssh :2222               # SSH on port 2222
  arcade serve --ws :8080                # SSH plus websocket play on :8080
  arcade serve --ssh "" --ws :8080       # Websocket only
  arcade serve --host-key ./my_host_key  # Use specific host key

Players can connect with:
  ssh localhost -p 23234
  ws://localhost:8080/ws?name=alice`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables SSH)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Websocket server address (empty disables websockets)")
	serveCmd.Flags().StringVar(&flagWSGame, "game", "snake", "Board played over websockets")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagWSAddr == "" {
		return errors.New("nothing to serve: set --ssh and/or --ws")
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var servers []func(context.Context) error

	if flagSSHAddr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
		}, store, logger.WithPrefix("arcade-ssh"))
		if err != nil {
			return err
		}
		servers = append(servers, sshServer.Serve)
	}

	if flagWSAddr != "" {
		wsServer, err := newWebServer(store)
		if err != nil {
			return err
		}
		servers = append(servers, func(ctx context.Context) error {
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := wsServer.Shutdown(shutdownCtx); err != nil {
					logger.Warn("websocket shutdown", "err", err)
				}
			}()
			return wsServer.ListenAndServe()
		})
	}

	logger.Info("press Ctrl+C to stop")

	// The first server to fail takes the others down with it.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, serve := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			cancel()
		}()
	}
	wg.Wait()

	return firstErr
}

// newWebServer builds the websocket server for --game using the resolved
// snake config.
func newWebServer(store *storage.Store) (*web.Server, error) {
	if !registry.Exists(flagWSGame) {
		return nil, fmt.Errorf("unknown --game %q (run 'arcade list' to see available boards)", flagWSGame)
	}
	sc, err := config.LoadSnake(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDifficulty != "" {
		config.ApplySnakePreset(&sc, config.DifficultyPreset(flagDifficulty))
	}
	board := sc.Board(flagWSGame)

	return web.NewServer(web.ServerConfig{
		Address:      flagWSAddr,
		GameID:       flagWSGame,
		Width:        board.Width,
		Height:       board.Height,
		MoveInterval: sc.MoveInterval(60),
		Seed:         flagSeed,
	}, store, logger.WithPrefix("arcade-ws"))
}
