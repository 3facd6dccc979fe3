package chat_feed_service

import (
	"testing"
)

func TestParseChatLineFromJSONString(t *testing.T) {
	line, err := ParseChatLine(`{"senderId":7,"sender":"alice","room":"dev","content":"hello"}`)
	if err != nil {
		t.Fatalf("ParseChatLine: %v", err)
	}
	if line.SenderID != 7 || line.Sender != "alice" || line.Room != "dev" || line.Content != "hello" {
		t.Errorf("parsed line = %+v", line)
	}
}

func TestParseChatLineFromDecodedObject(t *testing.T) {
	raw := map[string]interface{}{
		"senderId": 7,
		"sender":   "alice",
		"room":     "dev",
		"content":  "hello",
	}
	line, err := ParseChatLine(raw)
	if err != nil {
		t.Fatalf("ParseChatLine: %v", err)
	}
	if line.SenderID != 7 || line.Room != "dev" {
		t.Errorf("parsed line = %+v", line)
	}
}

func TestParseChatLineRejectsGarbage(t *testing.T) {
	if _, err := ParseChatLine("not json at all"); err == nil {
		t.Error("garbage payload should fail")
	}
	if _, err := ParseChatLine(`{"sender":"alice","content":"x"}`); err == nil {
		t.Error("missing room should fail")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(&Config{ServerURL: "http://localhost:9000"})
	if client.config.Path != "/socket.io/" {
		t.Errorf("default path = %q", client.config.Path)
	}
	if client.config.Timeout != 10 {
		t.Errorf("default timeout = %d", client.config.Timeout)
	}
	if client.IsConnected() {
		t.Error("new client should not report connected")
	}
}
