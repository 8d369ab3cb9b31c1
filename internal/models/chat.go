package models

// ChatMessage is one turn of a chatbot conversation.
// From is "user" or "ai", matching the web client.
type ChatMessage struct {
	ID   int    `json:"id"`
	From string `json:"from"`
	Text string `json:"text"`
}

// ChatRequest carries the conversation so far; the newest user message last.
type ChatRequest struct {
	PreviousChat []ChatMessage `json:"previousChat"`
}

// ChatResponse returns the conversation extended with the AI reply.
type ChatResponse struct {
	ChatList []ChatMessage `json:"chat_list"`
}
