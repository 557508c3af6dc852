package conversation

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a conversation transcript from a JSON file. The format matches
// the chat front-end's session export: session_id, topic, and a messages
// array of {role, content} objects.
func Load(path string) (Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conversation{}, fmt.Errorf("read transcript: %w", err)
	}
	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return Conversation{}, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return conv, nil
}
