// Copyright 2025 Airgap Kit
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	ur "github.com/airgapkit/go-ur"
)

type globalFlags struct {
	flagset *flag.FlagSet
	urType  string
	verbose bool
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.urType,
		"type",
		ur.DefaultType,
		"type identifier carried in the fragment header",
	)
	f.flagset.BoolVar(
		&f.verbose,
		"verbose",
		false,
		"log fragment accumulation progress to stderr",
	)
	return f
}

func main() {
	f := newGlobalFlags()
	err := f.flagset.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	if f.verbose {
		textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		slog.SetDefault(slog.New(textHandler))
	}

	if len(f.flagset.Args()) > 0 {
		switch f.flagset.Arg(0) {
		case "encode":
			runEncode(f)
		case "decode":
			runDecode(f)
		default:
			fmt.Printf("Unknown subcommand: %s\n", f.flagset.Arg(0))
			os.Exit(1)
		}
	} else {
		fmt.Printf("You must specify a subcommand (encode or decode)\n")
		os.Exit(1)
	}
}
