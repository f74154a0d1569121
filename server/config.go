package server

import (
	"time"
)

// Config holds the settings for the classify HTTP service. It is
// meant to be filled from the environment with envconfig.
type Config struct {
	Addr           string        `envconfig:"ARBOR_ADDR" default:":8866"`
	RequestTimeout time.Duration `envconfig:"ARBOR_REQUEST_TIMEOUT" default:"15s"`
	MaxBatchLen    int           `envconfig:"ARBOR_MAX_BATCH_LEN" default:"1024"`
}
