package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/flarexio/simstore"
	"github.com/flarexio/simstore/embedding"
	"github.com/flarexio/simstore/embedding/chromem"
	"github.com/flarexio/simstore/embedding/openai"

	mcpE "github.com/flarexio/simstore/mcp"
	httpT "github.com/flarexio/simstore/transport/http"
	natsT "github.com/flarexio/simstore/transport/nats"
)

func main() {
	cmd := &cli.Command{
		Name:  "simstore",
		Usage: "SimStore service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Path to the SimStore service",
			},
			&cli.StringFlag{
				Name:    "nats",
				Usage:   "NATS server URL, empty to disable the NATS transport",
				Sources: cli.EnvVars("NATS_URL"),
			},
			&cli.BoolFlag{
				Name:  "http",
				Usage: "Enable HTTP transport",
				Value: true,
			},
			&cli.StringFlag{
				Name:  "http-addr",
				Usage: "HTTP server address",
				Value: ":5000",
			},
		},
		Action: run,
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err.Error())
	}
}

func newProvider(cfg embedding.Config) (embedding.Provider, error) {
	switch cfg.Provider {
	case embedding.ProviderTypeOpenAI, "":
		return openai.NewEmbeddingProvider(cfg), nil

	case embedding.ProviderTypeChromemOpenAI,
		embedding.ProviderTypeOllama,
		embedding.ProviderTypeOpenAICompat:
		return chromem.NewEmbeddingProvider(cfg)

	default:
		return nil, errors.New("unsupported embedding provider: " + string(cfg.Provider))
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		path = filepath.Join(homeDir, ".flarex", "simstore")
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)

	f, err := os.Open(filepath.Join(path, "config.yaml"))
	if err != nil {
		return err
	}
	defer f.Close()

	var cfg simstore.Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return err
	}

	provider, err := newProvider(cfg.Embedding)
	if err != nil {
		return err
	}

	svc := simstore.NewService(provider)
	svc = simstore.LoggingMiddleware(log)(svc)
	defer svc.Close()

	endpoints := simstore.MakeEndpoints(svc)

	// Add NATS Transport
	if natsURL := cmd.String("nats"); natsURL != "" {
		idBytes, err := os.ReadFile(filepath.Join(path, "id"))
		if err != nil {
			return err
		}

		edgeID := strings.TrimSpace(string(idBytes))

		nc, err := nats.Connect(natsURL,
			nats.Name("SimStore Server - "+edgeID),
			nats.UserCredentials(filepath.Join(path, "user.creds")),
		)

		if err != nil {
			return err
		}
		defer nc.Drain()

		srv, err := micro.AddService(nc, micro.Config{
			Name:    "simstore",
			Version: "1.0.0",
		})

		if err != nil {
			return err
		}
		defer srv.Stop()

		topic := "edges." + edgeID + ".simstore"

		root := srv.AddGroup(topic)
		if err := natsT.AddEndpoints(root, endpoints); err != nil {
			return err
		}

		log.Info("nats transport enabled", zap.String("topic", topic))
	}

	if cmd.Bool("http") {
		r := gin.Default()
		httpT.AddRouters(r, endpoints)

		endpoints := make(map[mcp.MCPMethod]mcpE.MCPEndpoint)
		endpoints[mcp.MethodInitialize] = mcpE.InitializeEndpoint(svc)
		endpoints[mcp.MethodPing] = mcpE.PingEndpoint(svc)
		endpoints[mcp.MethodToolsList] = mcpE.ListToolsEndpoint(svc)
		endpoints[mcp.MethodToolsCall] = mcpE.CallToolEndpoint(svc)
		httpT.AddStreamableRouters(r, endpoints)

		httpAddr := cmd.String("http-addr")
		go r.Run(httpAddr)

		log.Info("http transport enabled", zap.String("addr", httpAddr))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sign := <-quit

	log.Info("graceful shutdown", zap.String("signal", sign.String()))
	return nil
}
