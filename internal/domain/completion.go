package domain

// ToolParam is a single string parameter of a declared tool.
type ToolParam struct {
	Name        string
	Description string
	Required    bool
}

// Tool is a callable capability declared to the completion provider.
type Tool struct {
	Name        string
	Description string
	Params      []ToolParam
}

// CompletionRequest is one synchronous round trip to the completion provider.
type CompletionRequest struct {
	Model string
	Turns []Turn
	Tools []Tool
}

// FunctionCall is a structured directive returned by the provider.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// Completion is the provider outcome. Call is the first function call in the
// response, if any.
type Completion struct {
	Text string
	Call *FunctionCall
}
