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
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	ur "github.com/airgapkit/go-ur"
	"github.com/airgapkit/go-ur/cbor"
)

type decodeFlags struct {
	flagset  *flag.FlagSet
	inFile   string
	outFile  string
	cborDump bool
}

func newDecodeFlags() *decodeFlags {
	f := &decodeFlags{
		flagset: flag.NewFlagSet("decode", flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.inFile,
		"in",
		"",
		"path to a file with one fragment per line (defaults to stdin)",
	)
	f.flagset.StringVar(
		&f.outFile,
		"out",
		"",
		"path to write the raw payload to (defaults to printing hex)",
	)
	f.flagset.BoolVar(
		&f.cborDump,
		"cbor-dump",
		false,
		"dump the payload structure if it parses as CBOR",
	)
	return f
}

func runDecode(f *globalFlags) {
	decodeFlags := newDecodeFlags()
	err := decodeFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}

	in := os.Stdin
	if decodeFlags.inFile != "" {
		in, err = os.Open(decodeFlags.inFile)
		if err != nil {
			fmt.Printf("Failed to open fragment file: %s\n", err)
			os.Exit(1)
		}
		defer in.Close()
	}

	decoder := ur.NewDecoder(ur.WithDecoderType(f.urType))
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		done, err := decoder.Add(line)
		if err != nil {
			fmt.Printf("Failed to add fragment: %s\n", err)
			os.Exit(1)
		}
		if done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("Failed to read fragments: %s\n", err)
		os.Exit(1)
	}

	payload, err := decoder.Payload()
	if err != nil {
		fmt.Printf("Failed to reassemble payload: %s\n", err)
		os.Exit(1)
	}

	if decodeFlags.outFile != "" {
		if err := os.WriteFile(decodeFlags.outFile, payload, 0o644); err != nil {
			fmt.Printf("Failed to write payload file: %s\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Printf("%s\n", hex.EncodeToString(payload))
	}

	if decodeFlags.cborDump {
		var decoded any
		if _, err := cbor.Decode(payload, &decoded); err != nil {
			fmt.Printf("Payload does not parse as CBOR: %s\n", err)
			os.Exit(1)
		}
		fmt.Print(cbor.DumpStructure(decoded, ""))
	}
}
