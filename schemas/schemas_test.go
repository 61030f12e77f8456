package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.ElementsMatch(t, []string{ResumeDocument, ATSScore, AutosaveSnapshot}, Names())
}

func TestAllSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			data, err := Read(name)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON")

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "properties")
			assert.Contains(t, schemaObj["$id"], name)
		})
	}
}

func TestRead_Unknown(t *testing.T) {
	_, err := Read("job_profile.schema.json")
	assert.Error(t, err)
}
