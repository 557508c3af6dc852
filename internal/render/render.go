package render

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"scribe/internal/conversation"
)

// Assets holds the opaque logo byte buffers embedded in the document header.
// Either may be empty; absence degrades the header instead of failing.
type Assets struct {
	PrimaryLogo []byte
	AvatarLogo  []byte
}

// Block is one rendered message: the display name of its author and the
// normalized content paragraphs.
type Block struct {
	Speaker    string
	Role       conversation.Role
	Paragraphs []string
}

// Document is the fixed structure handed to the encoder: branding header,
// title lines, submitter info block, and the message blocks.
type Document struct {
	Topic     string
	Title     string
	FullName  string
	Email     string
	DateLine  string
	Blocks    []Block
	Assets    Assets
	Assistant string
}

// Render builds the archival document for a conversation. System-role turns
// are excluded; user turns are attributed to the submitter's title-cased
// first name and all other turns to the assistant display name.
func Render(conv conversation.Conversation, sub conversation.Submission, assistant string, assets Assets, now time.Time) Document {
	caser := cases.Title(language.Spanish)
	first := caser.String(sub.Name)
	last := caser.String(sub.LastName)

	turns := conv.WithoutSystemTurns()
	blocks := make([]Block, 0, len(turns))
	for _, turn := range turns {
		speaker := assistant
		if turn.Role == conversation.RoleUser {
			speaker = first
		}
		blocks = append(blocks, Block{
			Speaker:    speaker,
			Role:       turn.Role,
			Paragraphs: CleanContent(turn.Content),
		})
	}

	return Document{
		Topic:     conv.Topic,
		Title:     "Conversación de " + first + " con " + assistant,
		FullName:  first + " " + last,
		Email:     sub.Email,
		DateLine:  now.Format("02/01/2006 15:04") + " hs",
		Blocks:    blocks,
		Assets:    assets,
		Assistant: assistant,
	}
}
