package cmd

import (
	"fmt"
	"os"

	"github.com/lynxkv/lynx-go/cmd/kv"
	"github.com/lynxkv/lynx-go/cmd/owner"
	"github.com/lynxkv/lynx-go/cmd/store"
	"github.com/lynxkv/lynx-go/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "lynx",
		Short: "client for the Lynx key-value store",
		Long: fmt.Sprintf(`lynx (v%s)

A command-line client for the Lynx key-value store, speaking its
line-delimited JSON protocol over TCP or TLS.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of lynx",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lynx v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(store.StoreCommands)
	RootCmd.AddCommand(owner.OwnerCommands)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupConnectionFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	util.InitClientConfig()
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
