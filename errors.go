package triage

import "errors"

var (
	ErrQueueFull = errors.New("queue full")
	ErrShutdown  = errors.New("dispatcher shutdown")
)
