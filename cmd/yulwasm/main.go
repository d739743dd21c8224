package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wasmlang/yulwasm/binary"
	"github.com/wasmlang/yulwasm/codetransform"
	"github.com/wasmlang/yulwasm/dialect"
	"github.com/wasmlang/yulwasm/wat"
	"github.com/wasmlang/yulwasm/yul"
)

func main() {
	var (
		inFile  = flag.String("in", "", "Path to Yul source file")
		outFile = flag.String("o", "", "Output path (default stdout for wat, required for wasm)")
		format  = flag.String("format", "wat", "Output format: wat or wasm")
		verbose = flag.Bool("v", false, "Enable translation debug logging")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: yulwasm -in <file.yul> [-format wat|wasm] [-o out] [-v]")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		codetransform.SetLogger(logger)
	}

	if err := run(*inFile, *outFile, *format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, outFile, format string) error {
	src, err := os.ReadFile(inFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	tree, err := yul.Parse(string(src))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	module, err := codetransform.Run(dialect.NewWasmDialect(), tree)
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}

	switch format {
	case "wat":
		text := wat.Print(module)
		if outFile == "" {
			fmt.Print(text)
			return nil
		}
		return os.WriteFile(outFile, []byte(text), 0o644)
	case "wasm":
		if outFile == "" {
			return fmt.Errorf("binary output needs -o")
		}
		data, err := binary.Encode(module)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return os.WriteFile(outFile, data, 0o644)
	default:
		return fmt.Errorf("unknown format %q (want wat or wasm)", format)
	}
}
