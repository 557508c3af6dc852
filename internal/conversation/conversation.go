package conversation

import (
	"errors"
	"strings"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is a single message within a conversation.
type Turn struct {
	Role    Role   `json:"role" bson:"role"`
	Content string `json:"content" bson:"content"`
}

// Conversation is an ordered sequence of turns. It is immutable once handed
// to the pipeline; helpers return filtered copies instead of mutating.
type Conversation struct {
	SessionID string `json:"session_id"`
	Topic     string `json:"topic"`
	Turns     []Turn `json:"messages"`
}

// WithoutSystemTurns returns the turns that are archived: everything except
// system-role turns, in original order.
func (c Conversation) WithoutSystemTurns() []Turn {
	filtered := make([]Turn, 0, len(c.Turns))
	for _, turn := range c.Turns {
		if turn.Role == RoleSystem {
			continue
		}
		filtered = append(filtered, turn)
	}
	return filtered
}

// HasDialogue reports whether the conversation contains at least one user or
// assistant turn. Snapshots of empty conversations are skipped.
func (c Conversation) HasDialogue() bool {
	for _, turn := range c.Turns {
		if turn.Role == RoleUser || turn.Role == RoleAssistant {
			return true
		}
	}
	return false
}

// Submission carries the identity fields supplied once per archival request.
type Submission struct {
	Name     string
	LastName string
	Email    string
}

// Validate rejects submissions with any blank identity field.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(s.LastName) == "" {
		return errors.New("last name is required")
	}
	if strings.TrimSpace(s.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

// FullName joins the submitter's name and last name as stored in blob
// attributes.
func (s Submission) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(s.Name) + " " + strings.TrimSpace(s.LastName))
}
