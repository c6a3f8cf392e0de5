package main

import (
	"log"
	"os"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/storage/upstream"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// start CLI
	cli := commandLine{
		conf:    conf,
		fetcher: upstream.NewClient(conf.Upstream),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
