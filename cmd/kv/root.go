package kv

import (
	"github.com/lynxkv/lynx-go/cmd/util"
	"github.com/lynxkv/lynx-go/lib/engine"
	"github.com/lynxkv/lynx-go/lib/keyspace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	eng *engine.Engine
	ks  *keyspace.Keyspace

	// KeyValueCommands groups all record-level commands
	KeyValueCommands = &cobra.Command{
		Use:   "kv",
		Short: "Record-level commands on a keyspace",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}
			var err error
			if eng, err = util.GetEngine(); err != nil {
				return err
			}
			name := viper.GetString("keyspace")
			if viper.GetBool("persistent") {
				ks = keyspace.NewPersistent(eng, name, viper.GetBool("distributed"))
			} else {
				ks = keyspace.NewInMemory(eng, name, viper.GetBool("distributed"))
			}
			return nil
		},
	}
)

func init() {
	// keyspace selection flags shared by all kv commands
	key := "keyspace"
	KeyValueCommands.PersistentFlags().String(key, "default", util.WrapString("Keyspace to operate on"))
	key = "persistent"
	KeyValueCommands.PersistentFlags().Bool(key, false, util.WrapString("Address a persistent keyspace"))
	key = "distributed"
	KeyValueCommands.PersistentFlags().Bool(key, false, util.WrapString("Address a distributed keyspace"))

	KeyValueCommands.AddCommand(createKeyspaceCmd)
	KeyValueCommands.AddCommand(removeKeyspaceCmd)
	KeyValueCommands.AddCommand(insertCmd)
	KeyValueCommands.AddCommand(updateCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(deleteCmd)
	KeyValueCommands.AddCommand(keysCmd)
	KeyValueCommands.AddCommand(lenCmd)
	KeyValueCommands.AddCommand(searchCmd)
	KeyValueCommands.AddCommand(searchKeysCmd)
	KeyValueCommands.AddCommand(enforceSchemaCmd)
	KeyValueCommands.AddCommand(removeSchemaCmd)
	KeyValueCommands.AddCommand(schemasCmd)
	KeyValueCommands.AddCommand(dependingKeysCmd)
	KeyValueCommands.AddCommand(subscribeCmd)
}
