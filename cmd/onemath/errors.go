package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrNoCommand          = errors.New("no command specified")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrNoFiles            = errors.New("no pages found")
	ErrInvalidExtension   = errors.New("file must have .md, .markdown, .yaml or .yml extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteOutput        = errors.New("failed to write HTML file")
)
