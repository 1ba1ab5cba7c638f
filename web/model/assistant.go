package model

const MessageQueryRequired = "Query is required"

var assistantSchema = mustCompileSchema(`{
	"type": "object",
	"required": ["query"],
	"properties": {
		"query": {"type": "string", "minLength": 1}
	}
}`)

type AssistantResponse struct {
	Response string `json:"response"`
}

func ParseAssistantRequest(body []byte) (string, error) {
	doc, err := decodeDocument(body)
	if err != nil {
		return "", err
	}

	if err = validate(assistantSchema, doc); err != nil {
		return "", &ValidationError{Message: MessageQueryRequired}
	}

	return doc.string("query"), nil
}
