package main

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
)

// DumpProtocolSchema writes JSON Schemas for the wire protocol messages
// so client implementations can validate against the server contract.
func DumpProtocolSchema(outPath string) error {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	messages := map[string]interface{}{
		MsgInput:        ClientInput{},
		MsgJoin:         JoinMsg{},
		MsgWelcome:      WelcomeMsg{},
		MsgMapObjects:   MapObject{},
		MsgSnapshot:     Snapshot{},
		MsgPlayerJoin:   PlayerJoinMsg{},
		MsgPlayerLeave:  PlayerLeaveMsg{},
		MsgMapUpdate:    MapUpdateMsg{},
		MsgHealthUpdate: HealthUpdateMsg{},
		MsgScoreUpdate:  ScoreUpdateMsg{},
		MsgKill:         KillMsg{},
	}

	schemas := make(map[string]*jsonschema.Schema, len(messages))
	for name, msg := range messages {
		schemas[name] = reflector.ReflectFromType(reflect.TypeOf(msg))
	}

	data, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(outPath, data, 0o644)
}
