package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/aardvark-harvest/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"geoblacklight-schema-aardvark.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			assert.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_Compile(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			_, err = schemas.NewValidator(schemaFile, data)
			assert.NoError(t, err)
		})
	}
}

func TestAardvarkSchema_RequiredFields(t *testing.T) {
	data, err := os.ReadFile("geoblacklight-schema-aardvark.json")
	require.NoError(t, err)

	var doc struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.ElementsMatch(t, []string{
		"id", "dct_title_s", "dct_publisher_sm", "dct_spatial_sm", "gbl_resourceClass_sm",
		"gbl_resourceType_sm", "dct_accessRights_s", "gbl_mdVersion_s", "gbl_mdModified_dt",
	}, doc.Required)
}
