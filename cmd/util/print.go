package util

import (
	"encoding/json"
	"fmt"

	"github.com/lynxkv/lynx-go/wire/protocol"
)

// PrintResponse decodes a one-shot response frame and prints it in a
// human-readable form.
func PrintResponse(raw []byte) error {
	resp, err := protocol.ParseResponse[interface{}](raw)
	if err != nil {
		return err
	}

	fmt.Printf("status=%v\n", resp.Status)
	if resp.Error != nil {
		fmt.Printf("error=%s\n", *resp.Error)
	}

	payload, err := json.MarshalIndent(resp.Payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}
