package owner

import (
	"strings"

	"github.com/lynxkv/lynx-go/cmd/util"
	"github.com/lynxkv/lynx-go/lib/engine"
	"github.com/spf13/cobra"
)

var (
	eng *engine.Engine

	// OwnerCommands groups all owner and permission commands
	OwnerCommands = &cobra.Command{
		Use:   "owner",
		Short: "Owner and permission commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			var err error
			eng, err = util.GetEngine()
			return err
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists all owners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := eng.ListOwners()
			if err != nil {
				return err
			}
			return util.PrintResponse(raw)
		},
	}

	createCmd = &cobra.Command{
		Use:   "create [username] [password]",
		Short: "Creates a new owner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := eng.CreateOwner(args[0], args[1])
			if err != nil {
				return err
			}
			return util.PrintResponse(raw)
		},
	}

	removeCmd = &cobra.Command{
		Use:   "remove [username]",
		Short: "Removes an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := eng.RemoveOwner(args[0])
			if err != nil {
				return err
			}
			return util.PrintResponse(raw)
		},
	}

	grantCmd = &cobra.Command{
		Use:   "grant [username] [permission]",
		Short: "Grants a permission (read, write, all) to an owner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := eng.GrantTo(args[0], engine.Permission(args[1]), grantStore, splitKeyspaces(grantKeyspaces))
			if err != nil {
				return err
			}
			return util.PrintResponse(raw)
		},
	}

	revokeCmd = &cobra.Command{
		Use:   "revoke [username] [permission]",
		Short: "Revokes a permission (read, write, all) from an owner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := eng.RevokeFrom(args[0], engine.Permission(args[1]), grantStore, splitKeyspaces(grantKeyspaces))
			if err != nil {
				return err
			}
			return util.PrintResponse(raw)
		},
	}

	grantStore     string
	grantKeyspaces string
)

func init() {
	OwnerCommands.AddCommand(listCmd)
	OwnerCommands.AddCommand(createCmd)
	OwnerCommands.AddCommand(removeCmd)
	OwnerCommands.AddCommand(grantCmd)
	OwnerCommands.AddCommand(revokeCmd)

	for _, cmd := range []*cobra.Command{grantCmd, revokeCmd} {
		cmd.Flags().StringVar(&grantStore, "on-store", "", util.WrapString("Store to grant or revoke on (defaults to the configured store)"))
		cmd.Flags().StringVar(&grantKeyspaces, "keyspaces", "", util.WrapString("Comma-separated list of keyspaces to limit the permission to"))
	}
}

// splitKeyspaces turns the comma-separated flag value into a list
func splitKeyspaces(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
