/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package main implements the command line entry point of the CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"os"

	"chip8vm"
	"chip8vm/cli"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	ctx := app.Context()

	prog, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		}
		chip8vm.CreateLogger(false, false).Error("Invalid arguments", log.Err(err))
		os.Exit(1)
	}

	logger := chip8vm.CreateLogger(prog.Debug, prog.Quiet)

	opts := chip8vm.DefaultOptions()
	opts.ClockRate = prog.ClockRate
	opts.Quirks = prog.Quirks
	opts.Scale = prog.Scale
	opts.Tone = prog.Tone
	opts.Headless = prog.Headless
	opts.Mute = prog.Mute
	opts.Trace = prog.Trace

	program, err := os.ReadFile(prog.ROM)
	if err != nil {
		logger.Fatal("Reading program failed", log.Err(err))
	}

	e, err := chip8vm.New(opts, logger)
	if err != nil {
		logger.Fatal("Creating emulator failed", log.Err(err))
	}

	if err := e.Load(program); err != nil {
		logger.Fatal("Loading program failed", log.String("file", prog.ROM), log.Err(err))
	}

	if opts.Headless {
		err = e.RunTerminal(ctx)
	} else {
		err = e.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}
