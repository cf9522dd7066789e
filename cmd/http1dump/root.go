// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gowire/http1sp/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "http1dump",
	Short: "Parse HTTP/1.1 messages from a file or stdin and dump their structure",
}

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.LevelInfo,
		"log level (debug, info, warn, error)")
	cobra.OnInitialize(func() {
		logging.SetOptions(logging.Options{Stdout: true, Level: logLevel})
	})
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
