// Package aardvark assembles OpenGeoMetadata Aardvark records from extracted catalog fields.
package aardvark

// Record is one Aardvark document. JSON names are a wire contract with the discovery catalog.
// Optional scalar fields are pointers; optional lists are omitted when empty.
type Record struct {
	ID            string   `json:"id"`
	Identifier    []string `json:"dct_identifier_sm"`
	Title         string   `json:"dct_title_s"`
	Description   []string `json:"dct_description_sm,omitempty"`
	Creator       []string `json:"dct_creator_sm,omitempty"`
	Publisher     []string `json:"dct_publisher_sm"`
	Provider      string   `json:"schema_provider_s,omitempty"`
	ResourceClass []string `json:"gbl_resourceClass_sm"`
	ResourceType  []string `json:"gbl_resourceType_sm"`
	Format        *string  `json:"dct_format_s,omitempty"`
	Keyword       []string `json:"dcat_keyword_sm,omitempty"`
	Spatial       []string `json:"dct_spatial_sm"`
	Geometry      *string  `json:"locn_geometry,omitempty"`
	BBox          *string  `json:"dcat_bbox,omitempty"`
	Issued        *string  `json:"dct_issued_s,omitempty"`
	Temporal      []string `json:"dct_temporal_sm,omitempty"`
	IndexYear     []int    `json:"gbl_indexYear_im,omitempty"`
	Language      []string `json:"dct_language_sm,omitempty"`
	Rights        []string `json:"dct_rights_sm,omitempty"`
	AccessRights  string   `json:"dct_accessRights_s"`
	References    *string  `json:"dct_references_s,omitempty"`
	MemberOf      []string `json:"pcdm_memberOf_sm,omitempty"`
	MdVersion     string   `json:"gbl_mdVersion_s"`
	MdModified    string   `json:"gbl_mdModified_dt"`
	Suppressed    bool     `json:"gbl_suppressed_b"`
	DisplayNote   []string `json:"gbl_displayNote_sm,omitempty"`
}

// AccessRestricted is the access-rights value that triggers the restricted display note.
const AccessRestricted = "Restricted"

// ModifiedLayout is the gbl_mdModified_dt timestamp layout.
const ModifiedLayout = "2006-01-02T15:04:05Z"

// IssuedLayout is the normalized dct_issued_s layout.
const IssuedLayout = "2006-01-02"

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
