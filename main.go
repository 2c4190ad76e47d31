package main

import (
	"os"

	"github.com/robalobadob/pinyin-game/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
