package kv

import (
	"encoding/json"

	"github.com/lynxkv/lynx-go/cmd/util"
	"github.com/lynxkv/lynx-go/lib/keyspace"
	"github.com/lynxkv/lynx-go/wire/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// keyFromFlags returns the server key and custom key flags. At most one
// may be set; validation happens inside the keyspace methods.
func keyFromFlags() (string, string) {
	return viper.GetString("key"), viper.GetString("custom-key")
}

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().String("key", "", util.WrapString("Server-generated key of the record"))
	cmd.Flags().String("custom-key", "", util.WrapString("Custom key of the record (hashed client side)"))
}

// ----------------------------------------------
// Keyspace Lifecycle
// ----------------------------------------------

var createKeyspaceCmd = &cobra.Command{
	Use:   "create-keyspace",
	Short: "Create the selected keyspace on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := ks.Create(viper.GetInt("cache"), viper.GetBool("compression"))
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var removeKeyspaceCmd = &cobra.Command{
	Use:   "remove-keyspace",
	Short: "Remove the selected keyspace from the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := ks.Remove()
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

// ----------------------------------------------
// Record Commands
// ----------------------------------------------

var insertCmd = &cobra.Command{
	Use:   "insert <value>",
	Short: "Insert a value into the keyspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customKey := viper.GetString("custom-key")
		expire := viper.GetUint64("expire")

		var raw []byte
		var err error
		if schema := viper.GetString("schema"); schema != "" {
			raw, err = ks.InsertValueWithSchema(args[0], schema, customKey, expire)
		} else {
			raw, err = ks.InsertValue(args[0], customKey, expire)
		}
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <value>",
	Short: "Update a value in the keyspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, customKey := keyFromFlags()
		raw, err := ks.UpdateValue(args[0], key, customKey)
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a value from the keyspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, customKey := keyFromFlags()
		opts := keyspace.GetOptions{
			WithPointers:     viper.GetBool("with-pointers"),
			KeyIncluded:      viper.GetBool("key-included"),
			PointersMetadata: viper.GetBool("pointers-metadata"),
		}
		raw, err := ks.GetValue(key, customKey, opts)
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a record from the keyspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, customKey := keyFromFlags()
		raw, err := ks.DeleteKey(key, customKey)
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List keys in the keyspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := ks.GetKeys(keyspace.KeysOptions{
			Limit:        viper.GetInt("limit"),
			Volumes:      viper.GetStringSlice("volumes"),
			LatestVolume: viper.GetBool("latest-volume"),
		})
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var lenCmd = &cobra.Command{
	Use:   "len",
	Short: "Count records in the keyspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := ks.Length()
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <criteria-json>",
	Short: "Look up values matching search criteria",
	Long:  util.WrapString("Look up values matching search criteria. The argument is a JSON object mapping field names to expected values."),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := ks.LookupValues(args[0], viper.GetInt("limit"))
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var searchKeysCmd = &cobra.Command{
	Use:   "search-keys <criteria-json>",
	Short: "Look up keys of records matching search criteria",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := ks.LookupKeys(args[0], viper.GetInt("limit"), viper.GetString("schema"))
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

// ----------------------------------------------
// Schema Commands
// ----------------------------------------------

var enforceSchemaCmd = &cobra.Command{
	Use:   "enforce-schema <name> <fields-json>",
	Short: "Register a schema on the keyspace",
	Long:  util.WrapString("Register a schema on the keyspace. The second argument is a JSON object mapping field names to type names; inserts declaring this schema are validated against it."),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var fields map[string]string
		if err := json.Unmarshal([]byte(args[1]), &fields); err != nil {
			return common.NewError(common.ErrKValueParsing, "invalid schema fields: %v", err)
		}
		raw, err := ks.EnforceSchema(args[0], fields)
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var removeSchemaCmd = &cobra.Command{
	Use:   "remove-schema <name>",
	Short: "Drop a registered schema from the keyspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := ks.RemoveEnforcedSchema(args[0])
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schemas registered on the keyspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := ks.ListSchemas()
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

var dependingKeysCmd = &cobra.Command{
	Use:   "depending-keys",
	Short: "List keys stored under the same schema as a record",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, customKey := keyFromFlags()
		raw, err := ks.ListDependingKeys(key, customKey)
		if err != nil {
			return err
		}
		return util.PrintResponse(raw)
	},
}

func init() {
	createKeyspaceCmd.Flags().Int("cache", 0, util.WrapString("Cache size for the new keyspace"))
	createKeyspaceCmd.Flags().Bool("compression", false, util.WrapString("Enable compression for the new keyspace"))

	insertCmd.Flags().String("custom-key", "", util.WrapString("Custom key for the new record (hashed client side)"))
	insertCmd.Flags().Uint64("expire", 0, util.WrapString("Expiration in seconds, 0 for none"))
	insertCmd.Flags().String("schema", "", util.WrapString("Schema the value conforms to, validated server side"))

	addKeyFlags(updateCmd)

	addKeyFlags(getCmd)
	getCmd.Flags().Bool("with-pointers", false, util.WrapString("Resolve pointers in the returned value"))
	getCmd.Flags().Bool("key-included", false, util.WrapString("Include the record key in the response"))
	getCmd.Flags().Bool("pointers-metadata", false, util.WrapString("Return pointer metadata instead of resolved values"))

	addKeyFlags(deleteCmd)

	keysCmd.Flags().Int("limit", 0, util.WrapString("Maximum number of keys to return, 0 for all"))
	keysCmd.Flags().StringSlice("volumes", nil, util.WrapString("Restrict the listing to the named storage volumes (persistent keyspaces)"))
	keysCmd.Flags().Bool("latest-volume", false, util.WrapString("Restrict the listing to the most recent volume (persistent keyspaces)"))

	searchCmd.Flags().Int("limit", 0, util.WrapString("Maximum number of matches to return, 0 for all"))

	searchKeysCmd.Flags().Int("limit", 0, util.WrapString("Maximum number of matches to return, 0 for all"))
	searchKeysCmd.Flags().String("schema", "", util.WrapString("Restrict the search to records stored under this schema"))

	addKeyFlags(dependingKeysCmd)

	addKeyFlags(subscribeCmd)
}
