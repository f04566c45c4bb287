package main

import (
	_ "embed"

	"github.com/lumapix/photo-share-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
