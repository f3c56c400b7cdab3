package config

// Built-in record defaults, used for any DEFAULT key the configuration leaves empty.
const (
	DefaultMemberOf      = "AGSLOpenDataHarvest"
	DefaultAccessRights  = "Public"
	DefaultMdVersion     = "Aardvark"
	DefaultLanguage      = "English"
	DefaultProvider      = "American Geographical Society Library – UWM Libraries"
	DefaultResourceClass = "Other"
	DefaultPlaceholder   = "{{default}}"

	DefaultRights = "Although this data is being distributed by the American Geographical Society Library " +
		"at the University of Wisconsin-Milwaukee Libraries, no warranty expressed or implied is made by the " +
		"University as to the accuracy of the data and related materials. The act of distribution shall not " +
		"constitute any such warranty, and no responsibility is assumed by the University in the use of this " +
		"data, or related materials."

	DefaultBoilerplate = "This dataset was automatically cataloged from the creator's Open Data Portal. " +
		"In some cases, publication year and bounding coordinates shown here may be incorrect. " +
		"Additional download formats may be available on the author's website. " +
		"Please check the 'More details at' link for additional information."

	DefaultRestrictedNote = "Warning: This dataset is restricted and you may not be able to access the " +
		"resource. Contact the dataset provider or the AGSL for assistance."
)

// Defaults is the DEFAULT block: values for every optional output field plus the
// fallbacks used when a required field comes out empty.
type Defaults struct {
	MemberOf       []string `yaml:"MemberOf"`
	AccessRights   string   `yaml:"AccessRights"`
	MdVersion      string   `yaml:"MdVersion"`
	Language       []string `yaml:"Language"`
	Provider       string   `yaml:"Provider"`
	Suppressed     bool     `yaml:"Suppressed"`
	Rights         []string `yaml:"Rights"`
	DisplayNote    []string `yaml:"DisplayNote"`
	ResourceClass  string   `yaml:"ResourceClass"`
	ResourceType   string   `yaml:"ResourceType"`
	Publisher      string   `yaml:"Publisher"`
	Spatial        string   `yaml:"Spatial"`
	RestrictedNote string   `yaml:"RestrictedNote"`
	Boilerplate    string   `yaml:"Boilerplate"`
	Placeholder    string   `yaml:"Placeholder"`
}

// BuiltinDefaults returns the defaults used when no DEFAULT block is present.
func BuiltinDefaults() Defaults {
	var d Defaults
	d.applyDefaults()
	return d
}

func (d *Defaults) applyDefaults() {
	if len(d.MemberOf) == 0 {
		d.MemberOf = []string{DefaultMemberOf}
	}
	if d.AccessRights == "" {
		d.AccessRights = DefaultAccessRights
	}
	if d.MdVersion == "" {
		d.MdVersion = DefaultMdVersion
	}
	if len(d.Language) == 0 {
		d.Language = []string{DefaultLanguage}
	}
	if d.Provider == "" {
		d.Provider = DefaultProvider
	}
	if len(d.Rights) == 0 {
		d.Rights = []string{DefaultRights}
	}
	if d.ResourceClass == "" {
		d.ResourceClass = DefaultResourceClass
	}
	if d.RestrictedNote == "" {
		d.RestrictedNote = DefaultRestrictedNote
	}
	if d.Boilerplate == "" {
		d.Boilerplate = DefaultBoilerplate
	}
	if d.Placeholder == "" {
		d.Placeholder = DefaultPlaceholder
	}
}
