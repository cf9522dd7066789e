// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gowire/http1sp"
	"github.com/gowire/http1sp/internal/logging"
)

type dumpAcceptor struct {
	msgNo   int
	bodyLen int
}

func (a *dumpAcceptor) OnHead(msg *http1sp.Message) {
	a.msgNo++
	a.bodyLen = 0
	if msg.Request() {
		fmt.Printf("#%d %s %s %s\n", a.msgNo, msg.Method(), msg.FL.URI.Get(), msg.FL.Version.Get())
	} else {
		fmt.Printf("#%d %s %d %s\n", a.msgNo, msg.FL.Version.Get(), msg.FL.Status, msg.FL.Reason.Get())
	}
	for i := range msg.HL.Hdrs {
		h := &msg.HL.Hdrs[i]
		fmt.Printf("    %s: %s\n", h.Name.Get(), h.Val.Get())
	}
	if msg.IsUpgrade() {
		switch msg.UpgradeProtocols() {
		case http1sp.UProtoWSockF:
			logging.Infof("message #%d negotiates a WebSocket upgrade", a.msgNo)
		case http1sp.UProtoHTTP2F:
			logging.Infof("message #%d negotiates an HTTP/2 upgrade", a.msgNo)
		default:
			logging.Infof("message #%d negotiates a protocol upgrade", a.msgNo)
		}
	}
}

func (a *dumpAcceptor) OnMessage(msg *http1sp.Message, body http1sp.View, tail int) {
	a.bodyLen += body.Len.Int()
	if tail == 0 {
		fmt.Printf("    body: %d bytes\n", a.bodyLen)
	}
}

func (a *dumpAcceptor) OnError(msg *http1sp.Message, body http1sp.View, err http1sp.ErrorHdr) {
	logging.Errorf("message #%d: parse error: %s", a.msgNo, err)
}

var (
	maxBodySize   int
	maxHeaderSize int
	asResponse    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse HTTP/1.1 messages from a file (or stdin if no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		kind := http1sp.KindRequest
		if asResponse {
			kind = http1sp.KindResponse
		}

		acc := &dumpAcceptor{}
		p := http1sp.NewParser(http1sp.Config{
			Kind:          kind,
			MaxBodySize:   maxBodySize,
			MaxHeaderSize: maxHeaderSize,
		}, acc)

		buf := make([]byte, 4096)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				if perr := p.Feed(buf[:n]); perr != http1sp.ErrHdrOk {
					return fmt.Errorf("parse error: %s", perr)
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
		}
		logging.Infof("parsed %d message(s)", acc.msgNo)
		return nil
	},
}

func init() {
	parseCmd.Flags().IntVar(&maxBodySize, "max-body-size", http1sp.DefaultMaxBodySize,
		"maximum body fragment size buffered before streaming it out")
	parseCmd.Flags().IntVar(&maxHeaderSize, "max-header-size", http1sp.DefaultMaxHeaderSize,
		"maximum combined head-line + header-block size")
	parseCmd.Flags().BoolVar(&asResponse, "response", false,
		"parse the input as HTTP responses instead of requests")
	rootCmd.AddCommand(parseCmd)
}
