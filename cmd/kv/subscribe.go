package kv

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lynxkv/lynx-go/wire/protocol"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Subscribe to change events on the keyspace",
	Long:  "Subscribe to change events on the keyspace or on a single record. Runs until interrupted with Ctrl-C.",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, customKey := viper.GetString("key"), viper.GetString("custom-key")

		sub, err := ks.Subscribe(key, customKey)
		if err != nil {
			return err
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-sigCh:
				sub.Cancel()
				<-sub.Done()
				return sub.Err()
			case frame, ok := <-sub.Frames():
				if !ok {
					<-sub.Done()
					return sub.Err()
				}
				printFrame(frame)
			}
		}
	},
}

func printFrame(frame []byte) {
	msg, err := protocol.ParseStreamMessage[interface{}](frame)
	if err != nil {
		// not an envelope, show the raw line
		fmt.Println(strings.TrimSpace(string(frame)))
		return
	}
	if msg.Message != nil {
		fmt.Printf("message: %s\n", *msg.Message)
		return
	}
	fmt.Printf("status: %t\n", msg.Status)
	if msg.Error != nil {
		fmt.Printf("error: %s\n", *msg.Error)
	}
	if msg.Payload != nil {
		fmt.Printf("payload: %v\n", msg.Payload)
	}
}
