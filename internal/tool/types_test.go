package tool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiresProperty(t *testing.T) {
	decl := Declaration{
		Name: "t",
		Parameters: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"data":  {Type: TypeArray},
				"title": {Type: TypeString},
			},
			Required: []string{"data"},
		},
	}

	assert.True(t, decl.RequiresProperty("data", TypeArray))
	assert.False(t, decl.RequiresProperty("data", TypeString))
	assert.False(t, decl.RequiresProperty("title", TypeString)) // declared but optional
	assert.False(t, decl.RequiresProperty("missing", TypeArray))
}

func TestRequiresProperty_NoParameters(t *testing.T) {
	assert.False(t, Declaration{Name: "t"}.RequiresProperty("data", TypeArray))
}

func TestDeclaration_JSONOmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(Declaration{Name: "t", Description: "d"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"t","description":"d"}`, string(b))
}
