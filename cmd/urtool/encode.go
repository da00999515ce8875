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
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	ur "github.com/airgapkit/go-ur"
)

type encodeFlags struct {
	flagset  *flag.FlagSet
	inFile   string
	hexData  string
	capacity int
}

func newEncodeFlags() *encodeFlags {
	f := &encodeFlags{
		flagset: flag.NewFlagSet("encode", flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.inFile,
		"in",
		"",
		"path to the payload file to encode (defaults to stdin)",
	)
	f.flagset.StringVar(
		&f.hexData,
		"hex",
		"",
		"payload as a hex string, instead of -in or stdin",
	)
	f.flagset.IntVar(
		&f.capacity,
		"capacity",
		ur.DefaultFragmentCapacity,
		"maximum number of body characters per fragment",
	)
	return f
}

func runEncode(f *globalFlags) {
	encodeFlags := newEncodeFlags()
	err := encodeFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}

	var payload []byte
	if encodeFlags.hexData != "" {
		payload, err = hex.DecodeString(encodeFlags.hexData)
		if err != nil {
			fmt.Printf("Failed to decode payload hex: %s\n", err)
			os.Exit(1)
		}
	} else if encodeFlags.inFile != "" {
		payload, err = os.ReadFile(encodeFlags.inFile)
		if err != nil {
			fmt.Printf("Failed to load payload file: %s\n", err)
			os.Exit(1)
		}
	} else {
		payload, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Printf("Failed to read payload from stdin: %s\n", err)
			os.Exit(1)
		}
	}

	encoder := ur.NewEncoder(
		ur.WithEncoderType(f.urType),
		ur.WithFragmentCapacity(encodeFlags.capacity),
	)
	fragments, err := encoder.Encode(payload)
	if err != nil {
		fmt.Printf("Failed to encode payload: %s\n", err)
		os.Exit(1)
	}
	for _, fragment := range fragments {
		fmt.Println(fragment)
	}
}
