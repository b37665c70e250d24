package mcp

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() Catalog {
	return Catalog{
		{Name: "add", Description: "Add two numbers"},
		{Name: "compound_interest", Description: "Calculate compound interest returns"},
	}
}

func TestCatalog_Find(t *testing.T) {
	c := sampleCatalog()

	tool, ok := c.Find("compound_interest")
	require.True(t, ok)
	assert.Equal(t, "compound_interest", tool.Name)

	tool, ok = c.Find("ADD")
	require.True(t, ok)
	assert.Equal(t, "add", tool.Name)

	_, ok = c.Find("does_not_exist")
	assert.False(t, ok)
}

func TestCatalog_PromptLines(t *testing.T) {
	c := sampleCatalog()

	assert.Equal(t,
		"- add: Add two numbers\n- compound_interest: Calculate compound interest returns",
		c.PromptLines())
}

func TestCatalog_PromptLinesEmpty(t *testing.T) {
	assert.Equal(t, "", Catalog{}.PromptLines())
}

func TestNewDescriptor_SchemaParams(t *testing.T) {
	tool := &mcp.Tool{
		Name:        "compound_interest",
		Description: "Calculate compound interest returns",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"principal":   map[string]any{"type": "number"},
				"years":       map[string]any{"type": "integer"},
				"description": map[string]any{"type": "string"},
			},
		},
	}

	d := newDescriptor(tool)

	assert.Equal(t, "compound_interest", d.Name)
	assert.Equal(t, map[string]string{
		"principal":   "number",
		"years":       "integer",
		"description": "string",
	}, d.Params)
}

func TestNewDescriptor_NoSchema(t *testing.T) {
	d := newDescriptor(&mcp.Tool{Name: "add", Description: "Add two numbers"})

	assert.Equal(t, "add", d.Name)
	assert.Nil(t, d.Params)
}
