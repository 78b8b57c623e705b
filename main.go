// Package main is the entry point for the gitfolio CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/gitfolio/cmd"
	"github.com/huangsam/gitfolio/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	if err := cmd.Execute(); err != nil {
		iocache.CloseStores()
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
	iocache.CloseStores()
}
