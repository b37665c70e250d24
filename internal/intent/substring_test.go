package intent

import (
	"testing"

	"mcpchat/internal/mcp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() mcp.Catalog {
	return mcp.Catalog{
		{Name: "Add", Description: "Add two numbers", Params: map[string]string{"a": "integer", "b": "integer"}},
		{Name: "compound_interest", Description: "Calculate compound interest returns"},
	}
}

func TestSubstring_NoToolMentioned(t *testing.T) {
	d := &SubstringDetector{}

	req := d.Detect("The capital of France is Paris.", testCatalog())
	assert.Nil(t, req)
}

func TestSubstring_ToolNameInText(t *testing.T) {
	d := &SubstringDetector{}

	req := d.Detect("I will use Add to compute this", testCatalog())
	require.NotNil(t, req)
	assert.Equal(t, "Add", req.ToolName)
	assert.Empty(t, req.Parameters)
	assert.NotNil(t, req.Parameters)
}

func TestSubstring_CaseInsensitive(t *testing.T) {
	d := &SubstringDetector{}

	req := d.Detect("You should call COMPOUND_INTEREST for that.", testCatalog())
	require.NotNil(t, req)
	assert.Equal(t, "compound_interest", req.ToolName)
}

// The detection is lossy by design: any incidental mention of a tool
// name triggers an invocation.
func TestSubstring_OverTriggersOnIncidentalMention(t *testing.T) {
	d := &SubstringDetector{}

	req := d.Detect("In addition to that, the weather is nice.", testCatalog())
	require.NotNil(t, req)
	assert.Equal(t, "Add", req.ToolName)
}

// And it under-triggers when the model paraphrases the tool name
// instead of repeating it.
func TestSubstring_UnderTriggersOnParaphrase(t *testing.T) {
	d := &SubstringDetector{}

	req := d.Detect("I will sum the two values for you: 3 plus 4 is 7.", testCatalog())
	assert.Nil(t, req)
}

func TestSubstring_FirstCatalogEntryWins(t *testing.T) {
	d := &SubstringDetector{}

	req := d.Detect("Either Add or compound_interest would work here.", testCatalog())
	require.NotNil(t, req)
	assert.Equal(t, "Add", req.ToolName)
}

func TestSubstring_EmptyCatalog(t *testing.T) {
	d := &SubstringDetector{}

	req := d.Detect("I will use Add to compute this", mcp.Catalog{})
	assert.Nil(t, req)
}

func TestSubstring_Instructions(t *testing.T) {
	d := &SubstringDetector{}

	inst := d.Instructions(testCatalog())
	assert.Contains(t, inst, "- Add: Add two numbers")
	assert.Contains(t, inst, "- compound_interest: Calculate compound interest returns")
	assert.Contains(t, inst, "specify which tool")
}

// Repeated detection on identical input must return equal results:
// the detector holds no hidden mutable state.
func TestSubstring_Idempotent(t *testing.T) {
	d := &SubstringDetector{}
	catalog := testCatalog()
	text := "I will use Add to compute this"

	first := d.Detect(text, catalog)
	second := d.Detect(text, catalog)
	assert.Equal(t, first, second)
}
