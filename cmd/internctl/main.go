package main

import (
	"os"
	"strconv"

	"github.com/internforge/backend/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if err := rootCMD().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCMD() *cobra.Command {
	root := &cobra.Command{
		Use:          "internctl",
		Short:        "Operational tasks for the internforge backend",
		SilenceUsage: true,
	}
	root.AddCommand(indexesCMD(), checkOutputCMD())
	return root
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
