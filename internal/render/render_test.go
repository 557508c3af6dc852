package render

import (
	"testing"
	"time"

	"scribe/internal/conversation"
)

func testTime(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Date(2024, 5, 1, 10, 0, 0, 0, loc)
}

func TestRenderExcludesSystemTurns(t *testing.T) {
	conv := conversation.Conversation{
		Topic: "¡Quiero exportar!",
		Turns: []conversation.Turn{
			{Role: conversation.RoleSystem, Content: "instrucciones"},
			{Role: conversation.RoleUser, Content: "hola"},
			{Role: conversation.RoleAssistant, Content: "buenas"},
		},
	}
	sub := conversation.Submission{Name: "ana", LastName: "garcía", Email: "ana@x.com"}

	doc := Render(conv, sub, "SofIA", Assets{}, testTime(t))

	if len(doc.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(doc.Blocks))
	}
	if doc.Blocks[0].Speaker != "Ana" {
		t.Errorf("user speaker = %q", doc.Blocks[0].Speaker)
	}
	if doc.Blocks[1].Speaker != "SofIA" {
		t.Errorf("assistant speaker = %q", doc.Blocks[1].Speaker)
	}
}

func TestRenderHeaderFields(t *testing.T) {
	conv := conversation.Conversation{Topic: "Oportunidades de Inversión"}
	sub := conversation.Submission{Name: "ana", LastName: "garcía", Email: "ana@x.com"}

	doc := Render(conv, sub, "SofIA", Assets{}, testTime(t))

	if doc.Title != "Conversación de Ana con SofIA" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.FullName != "Ana García" {
		t.Errorf("full name = %q", doc.FullName)
	}
	if doc.Topic != "Oportunidades de Inversión" {
		t.Errorf("topic = %q", doc.Topic)
	}
	if doc.DateLine != "01/05/2024 10:00 hs" {
		t.Errorf("date line = %q", doc.DateLine)
	}
	if doc.Email != "ana@x.com" {
		t.Errorf("email = %q", doc.Email)
	}
}

func TestRenderNormalizesContent(t *testing.T) {
	conv := conversation.Conversation{Turns: []conversation.Turn{
		{Role: conversation.RoleUser, Content: "Hello **world** 🙂"},
	}}
	sub := conversation.Submission{Name: "Ana", LastName: "García", Email: "ana@x.com"}

	doc := Render(conv, sub, "SofIA", Assets{}, testTime(t))

	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %d", len(doc.Blocks))
	}
	if got := doc.Blocks[0].Paragraphs[0]; got != "Hello world" {
		t.Errorf("content = %q, want %q", got, "Hello world")
	}
}

func TestRenderCarriesAssets(t *testing.T) {
	assets := Assets{PrimaryLogo: []byte{1, 2}, AvatarLogo: nil}
	doc := Render(conversation.Conversation{}, conversation.Submission{Name: "a", LastName: "b", Email: "c"}, "SofIA", assets, testTime(t))
	if len(doc.Assets.PrimaryLogo) != 2 {
		t.Error("primary logo not carried through")
	}
	if doc.Assets.AvatarLogo != nil {
		t.Error("avatar logo should stay empty")
	}
}
