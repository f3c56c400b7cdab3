package classify

import "strings"

// facts are the lower-cased views of an Input that rules match against.
type facts struct {
	in          Input
	title       string
	description string
	subject     string
	publisher   string
	references  string
	format      string
}

func newFacts(in Input) *facts {
	return &facts{
		in:          in,
		title:       strings.ToLower(in.Title),
		description: strings.ToLower(in.Description),
		subject:     strings.ToLower(strings.Join(in.Keywords, " ")),
		publisher:   strings.ToLower(in.Publisher),
		references:  strings.ToLower(in.References),
		format:      in.Format,
	}
}

func (f *facts) aerialTitle() bool {
	return strings.Contains(f.title, "aerial photo")
}

// mapText reports map vocabulary in the description or subject.
func (f *facts) mapText() bool {
	return strings.Contains(f.description, "relief") ||
		strings.Contains(f.description, "map") ||
		strings.Contains(f.subject, "maps")
}

// mapTitle extends mapText with map vocabulary in the title.
func (f *facts) mapTitle() bool {
	return f.mapText() ||
		strings.Contains(f.title, "plan") ||
		strings.Contains(f.title, "map") ||
		strings.Contains(f.title, "topographic")
}

func (f *facts) elevation() bool {
	if f.format == FormatArcGRID || f.format == FormatArcGrid || f.format == FormatIMG {
		return true
	}
	d := f.in.Description
	return strings.Contains(d, "DEM") ||
		strings.Contains(d, "DSM") ||
		strings.Contains(f.description, "digital elevation model") ||
		strings.Contains(f.description, "digital terrain model") ||
		strings.Contains(f.description, "digital surface model") ||
		strings.Contains(f.description, "arc-second") ||
		strings.Contains(f.description, "raster dataset")
}

func (f *facts) hasShapefileDistribution() bool {
	for _, d := range f.in.Distributions {
		if d.Title == ShapefileTitle {
			return true
		}
	}
	return false
}

// rule is one row of the classification table.
type rule struct {
	Name  string
	Match func(f *facts) bool
	Apply func(f *facts, d Defaults) Result
}

func result(class []string, types []string, format string) Result {
	if types == nil {
		types = []string{}
	}
	return Result{Class: class, Type: types, Format: format}
}

// rules is evaluated top to bottom; the first match decides the result.
var rules = []rule{
	{
		Name:  "app-list",
		Match: func(f *facts) bool { return f.in.App },
		Apply: func(*facts, Defaults) Result {
			return result([]string{ClassWebsites}, nil, "")
		},
	},
	{
		Name:  "map-list",
		Match: func(f *facts) bool { return f.in.Map },
		Apply: func(*facts, Defaults) Result {
			return result([]string{ClassMaps}, []string{TypeDigitalMaps}, "")
		},
	},
	{
		Name:  "shapefile-distribution",
		Match: (*facts).hasShapefileDistribution,
		Apply: func(*facts, Defaults) Result {
			return result([]string{ClassDatasets}, []string{TypeDigitalMaps}, FormatShapefile)
		},
	},
	{
		Name:  "title-aerial-photo",
		Match: (*facts).aerialTitle,
		Apply: func(f *facts, _ Defaults) Result {
			return result([]string{ClassImagery}, []string{TypeAerialPhotographs}, f.format)
		},
	},
	{
		Name:  "publisher-sanborn",
		Match: func(f *facts) bool { return strings.Contains(f.publisher, "sanborn") },
		Apply: func(f *facts, _ Defaults) Result {
			return result([]string{ClassMaps}, []string{TypeFireInsuranceMaps}, f.format)
		},
	},
	{
		Name:  "title-topographical-map",
		Match: func(f *facts) bool { return strings.Contains(f.title, "topographical map") },
		Apply: func(f *facts, _ Defaults) Result {
			return result([]string{ClassMaps}, []string{TypeTopographicMaps}, f.format)
		},
	},
	{
		Name:  "title-aeronautical",
		Match: func(f *facts) bool { return strings.Contains(f.title, "aeronautical") },
		Apply: func(f *facts, _ Defaults) Result {
			return result([]string{ClassMaps}, []string{TypeAeronauticalCharts}, f.format)
		},
	},
	{
		Name:  "references-iiif",
		Match: func(f *facts) bool { return strings.Contains(f.references, "iiif") },
		Apply: func(f *facts, _ Defaults) Result {
			if f.aerialTitle() || strings.Contains(f.description, "aerial photo") {
				return result([]string{ClassMaps}, []string{TypeAerialPhotographs}, f.format)
			}
			return result([]string{ClassMaps}, []string{TypeDigitalMaps}, f.format)
		},
	},
	{
		Name:  "format-tiff",
		Match: func(f *facts) bool { return f.format == FormatGeoTIFF || f.format == FormatTIFF },
		Apply: func(f *facts, _ Defaults) Result {
			switch {
			case f.mapTitle():
				return result([]string{ClassMaps}, []string{TypeDigitalMaps}, f.format)
			case f.aerialTitle():
				return result([]string{ClassImagery}, []string{TypeAerialPhotographs}, f.format)
			default:
				return result([]string{ClassDatasets}, nil, f.format)
			}
		},
	},
	{
		Name: "format-dataset",
		Match: func(f *facts) bool {
			return vectorFormats[f.format] ||
				strings.Contains(f.in.References, "csdgm") ||
				strings.Contains(f.in.References, "ArcGIS#")
		},
		Apply: func(f *facts, _ Defaults) Result {
			if f.aerialTitle() {
				return result([]string{ClassImagery}, []string{TypeAerialPhotographs}, f.format)
			}
			return result([]string{ClassDatasets}, nil, f.format)
		},
	},
	{
		Name:  "format-absent",
		Match: func(f *facts) bool { return f.format == "" },
		Apply: func(f *facts, d Defaults) Result {
			if f.mapText() {
				return result([]string{ClassMaps}, nil, "")
			}
			return result([]string{d.Class}, nil, "")
		},
	},
	{
		Name:  "elevation-raster",
		Match: (*facts).elevation,
		Apply: func(f *facts, _ Defaults) Result {
			return result([]string{ClassDatasets}, []string{TypeRasterData}, f.format)
		},
	},
	{
		Name:  "fallback",
		Match: func(*facts) bool { return true },
		Apply: func(f *facts, d Defaults) Result {
			var types []string
			if d.Type != "" {
				types = []string{d.Type}
			}
			return result([]string{d.Class}, types, f.format)
		},
	},
}

// RuleNames lists the table in evaluation order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
