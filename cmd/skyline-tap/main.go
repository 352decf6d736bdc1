// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/skyline/lib/codec"
	"github.com/bureau-foundation/skyline/lib/skyline"
	"github.com/bureau-foundation/skyline/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		listen      string
		codecName   string
		diagnose    bool
		count       int
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("skyline-tap", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&listen, "listen", "127.0.0.1:2025", "UDP address to receive datagrams on")
	flagSet.StringVar(&codecName, "codec", codec.Msgpack.Name(), "payload encoding (msgpack or cbor)")
	flagSet.BoolVar(&diagnose, "diagnose", false, "print CBOR diagnostic notation instead of decoding (requires --codec cbor)")
	flagSet.IntVar(&count, "count", 0, "exit after this many datagrams (0 runs until interrupted)")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Fprintf(stdout, "skyline-tap %s\n", version.Info())
		return nil
	}

	payloadCodec, err := codec.ByName(codecName)
	if err != nil {
		return err
	}
	if diagnose && payloadCodec != codec.CBOR {
		return fmt.Errorf("--diagnose requires --codec %s", codec.CBOR.Name())
	}
	if count < 0 {
		return fmt.Errorf("--count must not be negative")
	}

	conn, err := net.ListenPacket("udp", listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", listen, err)
	}
	fmt.Fprintf(stderr, "listening on %s (%s)\n", conn.LocalAddr(), payloadCodec.Name())

	t := &tap{
		codec:    payloadCodec,
		diagnose: diagnose,
		stdout:   stdout,
		stderr:   stderr,
	}
	return t.serve(ctx, conn, count)
}

type tap struct {
	codec    codec.Codec
	diagnose bool
	stdout   io.Writer
	stderr   io.Writer
}

// serve prints datagrams from conn until ctx is cancelled or limit
// datagrams have been printed (limit 0 means no limit). It closes conn.
func (t *tap) serve(ctx context.Context, conn net.PacketConn, limit int) error {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	buffer := make([]byte, skyline.MaxDatagramSize)
	printed := 0
	for limit == 0 || printed < limit {
		n, sender, err := conn.ReadFrom(buffer)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		line, err := t.format(buffer[:n])
		if err != nil {
			fmt.Fprintf(t.stderr, "%s: %v\n", sender, err)
			continue
		}
		fmt.Fprintln(t.stdout, line)
		printed++
	}
	return nil
}

func (t *tap) format(payload []byte) (string, error) {
	if t.diagnose {
		return codec.Diagnose(payload)
	}
	datapoint, err := t.codec.Decode(payload)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d %s", datapoint.Name, datapoint.Timestamp, datapoint.Value), nil
}
