package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	glide "github.com/valkey-io/valkey-glide-sub004"
	"github.com/valkey-io/valkey-glide-sub004/internal/command"
	"github.com/valkey-io/valkey-glide-sub004/internal/metrics"
	"github.com/valkey-io/valkey-glide-sub004/internal/output"
)

var (
	version = "dev" // set at build time via -ldflags "-X main.version=..."

	host        string
	port        string
	username    string
	password    string
	useRESP3    bool
	codecName   string
	cmdStr      string
	metricsAddr string

	diagnostics glide.Diagnostics
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "valkeyrepl",
		Short:   "An interactive Valkey client with typed result display",
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			if metricsAddr != "" {
				startMetrics(metricsAddr)
			}
			if cmdStr != "" {
				runOneShot()
			} else {
				runRepl()
			}
		},
	}

	rootCmd.Flags().StringVarP(&host, "host", "H", "localhost", "Server host")
	rootCmd.Flags().StringVarP(&port, "port", "p", "6379", "Server port")
	rootCmd.Flags().StringVarP(&username, "username", "u", "", "ACL username")
	rootCmd.Flags().StringVar(&password, "password", "", "Password")
	rootCmd.Flags().BoolVar(&useRESP3, "resp3", false, "Negotiate RESP3 after connecting")
	rootCmd.Flags().StringVar(&codecName, "codec", "", "Value codec for binary payloads (snappy, gzip, base64)")
	rootCmd.Flags().StringVarP(&cmdStr, "command", "c", "", "Execute a single command and exit")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9121)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// startMetrics exposes command and normalization metrics and routes
// them into the client as its diagnostics sink.
func startMetrics(addr string) {
	reg := prometheus.NewRegistry()
	diagnostics = metrics.NewObserver(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			fmt.Fprintf(os.Stderr, "Metrics server error: %v\n", err)
		}
	}()
}

func connect(ctx context.Context, host, port, user, pass string) (*glide.Client, error) {
	return glide.New(ctx, glide.Options{
		Addr:        net.JoinHostPort(host, port),
		Username:    user,
		Password:    pass,
		UseRESP3:    useRESP3,
		Codec:       codecName,
		Diagnostics: diagnostics,
	})
}

func runOneShot() {
	ctx := context.Background()

	c, err := connect(ctx, host, port, username, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection failed: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	reg, err := command.NewRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load commands: %v\n", err)
		os.Exit(1)
	}

	parsed, err := command.Parse(cmdStr, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}
	if parsed.Name == "" {
		return
	}

	val, err := execute(ctx, c, parsed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if parsed.Pipe != "" {
		if err := output.PipeValue(os.Stdout, val, parsed.Pipe); err != nil {
			fmt.Fprintf(os.Stderr, "Pipe error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No color for one-shot scripts.
	output.PrintValue(os.Stdout, val, output.PrintOpts{Newline: true})
}
