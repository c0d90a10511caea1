package main

import (
	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/cli/sh"
	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/env"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
