// Package classify assigns an Aardvark resource class, resource type and format to a dataset
// through one ordered rule table.
package classify

// Resource classes.
const (
	ClassDatasets    = "Datasets"
	ClassMaps        = "Maps"
	ClassImagery     = "Imagery"
	ClassWebsites    = "Websites"
	ClassCollections = "Collections"
	ClassOther       = "Other"
)

// Resource types.
const (
	TypeDigitalMaps        = "Digital maps"
	TypeAerialPhotographs  = "Aerial photographs"
	TypeFireInsuranceMaps  = "Fire insurance maps"
	TypeTopographicMaps    = "Topographic maps"
	TypeAeronauticalCharts = "Aeronautical charts"
	TypeRasterData         = "Raster data"
)

// Formats.
const (
	FormatShapefile   = "Shapefile"
	FormatGeoTIFF     = "GeoTIFF"
	FormatTIFF        = "TIFF"
	FormatArcGrid     = "ArcGrid"
	FormatArcGRID     = "ArcGRID"
	FormatGeoDatabase = "GeoDatabase"
	FormatGeodatabase = "Geodatabase"
	FormatBinaryGrid  = "Arc/Info Binary Grid"
	FormatIMG         = "IMG"
)

// ShapefileTitle is the distribution title that marks a downloadable shapefile.
const ShapefileTitle = "Shapefile"

// vectorFormats are formats that always describe a dataset.
var vectorFormats = map[string]bool{
	FormatShapefile:   true,
	FormatArcGrid:     true,
	FormatGeoDatabase: true,
	FormatGeodatabase: true,
	FormatBinaryGrid:  true,
}

// formatAliases maps distribution titles and format strings to canonical formats.
var formatAliases = map[string]string{
	"shapefile":            FormatShapefile,
	"geotiff":              FormatGeoTIFF,
	"tiff":                 FormatTIFF,
	"tif":                  FormatTIFF,
	"arcgrid":              FormatArcGrid,
	"file geodatabase":     FormatGeoDatabase,
	"geodatabase":          FormatGeoDatabase,
	"arc/info binary grid": FormatBinaryGrid,
	"img":                  FormatIMG,
	"erdas imagine":        FormatIMG,
}
