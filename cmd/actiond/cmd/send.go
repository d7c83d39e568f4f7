package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/bjaus/action"
	"github.com/bjaus/action/transport/natsrpc"
)

var sendID string

var sendCmd = &cobra.Command{
	Use:   "send <key> [arg...]",
	Short: "Send one command and print the result",
	Long: `Sends a command to a running actiond and prints the result envelope.

Each argument is read as JSON when it parses as JSON and as a plain
string otherwise, so 42, true, null and '{"a":1}' keep their types.`,
	Example: `  actiond send getLoginUserInfo
  actiond send snsLikeCancel 13920491044
  actiond send --id req-7 addFriend wxid_abc "hello there"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendID, "id", "", "correlation id (default: random)")
}

func runSend(cmd *cobra.Command, args []string) error {
	conn, err := natsrpc.Connect(cfg.NATS.URL, "actiond-send", cfg.NATS.Timeout, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	id := sendID
	if id == "" {
		id = action.NewID()
	}

	client := natsrpc.NewClient(conn, cfg.NATS.Subject, cfg.NATS.Timeout)
	res, err := client.SendID(cmd.Context(), id, args[0], parseCLIArgs(args[1:])...)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// parseCLIArgs types each shell word: valid JSON keeps its JSON type,
// anything else is a string.
func parseCLIArgs(words []string) action.Args {
	args := make(action.Args, len(words))
	for i, w := range words {
		if !gjson.Valid(w) {
			args[i] = action.String(w)
			continue
		}
		// Valid JSON always decodes.
		_ = args[i].UnmarshalJSON([]byte(w))
	}
	return args
}
