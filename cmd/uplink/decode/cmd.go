// Decode hex dumps of uplink messages, e.g. from `mosquitto_sub -F %x`.
package decode

import (
	"context"
	"encoding/hex"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	"github.com/temoto/uplink/cmd/uplink/subcmd"
	"github.com/temoto/uplink/helpers"
	"github.com/temoto/uplink/helpers/cli"
	"github.com/temoto/uplink/internal/engine"
	"github.com/temoto/uplink/internal/state"
	"github.com/temoto/uplink/uplink"
)

const modName = "decode"

const usage = `syntax: [data|c] HEX
- data HEX  decode snapshot, default
- c HEX     decode command
`

var Mod = subcmd.Mod{Name: modName, Usage: "decode hex messages from stdin", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.Log.Debugf("decode device=%d topic=%s", config.Uplink.DeviceId, engine.TopicData(int32(config.Uplink.DeviceId)))
	cli.MainLoop("uplink-"+modName, newExecutor(ctx), newCompleter(ctx))
	return nil
}

func newCompleter(ctx context.Context) func(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "data", Description: "snapshot hex"},
		{Text: "c", Description: "command hex"},
	}
	return func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
	}
}

func newExecutor(ctx context.Context) func(string) {
	g := state.GetGlobal(ctx)
	return func(line string) {
		text, err := Decode(line)
		if err != nil {
			g.Log.Error(err)
			g.Log.Info(usage)
			return
		}
		if err = helpers.WriteAll(os.Stdout, []byte(text)); err != nil {
			g.Log.Error(err)
		}
	}
}

// Decode returns proto text of message in hex line.
func Decode(line string) (string, error) {
	var msg proto.Message = &uplink.Snapshot{}
	line = strings.TrimSpace(line)
	if parts := strings.Fields(line); len(parts) == 2 {
		switch parts[0] {
		case "data":
		case "c":
			msg = &uplink.Command{}
		default:
			return "", errors.NotValidf("message type=%s", parts[0])
		}
		line = parts[1]
	}
	// mosquitto_sub wrongly strips leading zero in hex format
	if len(line)%2 == 1 {
		line = "0" + line
	}
	b, err := hex.DecodeString(line)
	if err != nil {
		return "", errors.Annotate(err, "hex decode")
	}
	if err := proto.Unmarshal(b, msg); err != nil {
		return "", errors.Annotate(err, "proto unmarshal")
	}
	if s, ok := msg.(*uplink.Snapshot); ok {
		return proto.MarshalTextString(msg) + "# time=" + s.Timestamp().UTC().Format("2006-01-02T15:04:05.000Z") + "\n", nil
	}
	return proto.MarshalTextString(msg), nil
}
