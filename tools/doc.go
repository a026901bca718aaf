// Package tools defines the Tool interface for LLM agents, the generic Function tool,
// and the Toolbox that executes tool calls and reports failures as structured results.
package tools
