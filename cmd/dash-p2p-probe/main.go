// Command dash-p2p-probe dials a single Dash peer, completes the version
// handshake, and prints spork, InstantSend lock, and address traffic it
// observes until the timeout elapses or the connection drops.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/dashpay/dash-p2p-core/internal/logs"
	"github.com/dashpay/dash-p2p-core/internal/netparams"
)

type options struct {
	Network  string `long:"network" default:"mainnet" description:"network to probe: mainnet, testnet, devnet"`
	Peer     string `long:"peer" required:"true" description:"peer address to dial, host:port"`
	Timeout  int    `long:"timeout" default:"30" description:"seconds to stay connected before disconnecting"`
	LogLevel string `long:"log-level" default:"info" description:"log level: trace, debug, info, warn, error, off"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "dash-p2p-probe"
	if _, err := parser.ParseArgs(args); err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	net, ok := netparams.ByName(opts.Network)
	if !ok {
		fmt.Fprintf(stderr, "unknown network %q\n", opts.Network)
		return 2
	}
	if opts.Peer == "" {
		fmt.Fprintln(stderr, "--peer is required")
		return 2
	}

	logs.SetLevel(logs.SubsystemPeer, levelCode(opts.LogLevel))
	logs.SetLevel(logs.SubsystemWire, levelCode(opts.LogLevel))
	logs.SetLevel(logs.SubsystemProbe, levelCode(opts.LogLevel))

	return runProbe(net, opts, stdout, stderr)
}

// levelCode maps the CLI's human log-level spelling to the TRCE/DBUG/INFO
// four-letter codes internal/logs and decred/slog expect.
func levelCode(name string) string {
	switch name {
	case "trace":
		return "TRCE"
	case "debug":
		return "DBUG"
	case "info":
		return "INFO"
	case "warn", "warning":
		return "WARN"
	case "error":
		return "ERRO"
	case "off":
		return "OFF"
	default:
		return "INFO"
	}
}
