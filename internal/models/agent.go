package models

// AgentResult represents the result of a browser automation attempt
type AgentResult int

const (
	ResultFailed AgentResult = iota
	ResultSuccess
	ResultUncertain
)
