package core

import (
	"errors"
)

var (
	ErrNotInitialized   = errors.New("subsystem used before initialization")
	ErrAlreadyRunning   = errors.New("engine is already running")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrUnsupportedAsset = errors.New("unsupported asset type")
	ErrQueueFull        = errors.New("queue is full")
	ErrQueueEmpty       = errors.New("queue is empty")
	ErrUnknown          = errors.New("unknown")
)
