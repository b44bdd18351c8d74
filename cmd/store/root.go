package store

import (
	"github.com/lynxkv/lynx-go/cmd/util"
	"github.com/lynxkv/lynx-go/lib/engine"
	"github.com/spf13/cobra"
)

var (
	eng *engine.Engine

	// StoreCommands groups all store administration commands
	StoreCommands = &cobra.Command{
		Use:   "store",
		Short: "Store administration commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			var err error
			eng, err = util.GetEngine()
			return err
		},
	}

	createCmd = &cobra.Command{
		Use:   "create",
		Short: "Creates the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := eng.CreateStore()
			if err != nil {
				return err
			}
			return util.PrintResponse(raw)
		},
	}

	removeCmd = &cobra.Command{
		Use:   "remove",
		Short: "Removes the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := eng.RemoveStore()
			if err != nil {
				return err
			}
			return util.PrintResponse(raw)
		},
	}

	structuresCmd = &cobra.Command{
		Use:   "structures",
		Short: "Lists the structures available on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := eng.StructureAvailable()
			if err != nil {
				return err
			}
			return util.PrintResponse(raw)
		},
	}
)

func init() {
	StoreCommands.AddCommand(createCmd)
	StoreCommands.AddCommand(removeCmd)
	StoreCommands.AddCommand(structuresCmd)
}
