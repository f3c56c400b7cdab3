// Package references maps dataset distributions to typed Aardvark reference links.
//
// Links are percent-escaped with ":/?=&%#" left intact. Older harvests kept only ":/?=", which
// escaped '&' between query parameters, '%' of already-escaped links and '#' fragments; links in
// records written by this package therefore differ from those for multi-parameter, pre-escaped
// or fragment URLs.
package references

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/aardvark-harvest/internal/dcat"
)

// Reference type URIs.
const (
	URL             = "http://schema.org/url"
	DownloadURL     = "http://schema.org/downloadUrl"
	FeatureLayer    = "urn:x-esri:serviceType:ArcGIS#FeatureLayer"
	ImageMapLayer   = "urn:x-esri:serviceType:ArcGIS#ImageMapLayer"
	DynamicMapLayer = "urn:x-esri:serviceType:ArcGIS#DynamicMapLayer"
)

// Distribution formats with a reference mapping.
const (
	FormatArcGISREST = "ArcGIS GeoServices REST API"
	FormatZIP        = "ZIP"
)

// serviceTypes are matched by substring of the service URL, in order.
var serviceTypes = []struct {
	marker string
	uri    string
}{
	{"FeatureServer", FeatureLayer},
	{"ImageServer", ImageMapLayer},
	{"MapServer", DynamicMapLayer},
}

// secondaryDownloads provide a download link only when no ZIP distribution exists.
var secondaryDownloads = map[string]bool{
	"geojson": true,
	"csv":     true,
	"kml":     true,
}

// References maps a reference type URI to a URL.
type References map[string]string

// Build maps distributions with a usable URL and declared format to references, plus the
// landing page. Unmatched distributions are skipped. For each type the first URL wins.
func Build(landingPage string, dists []dcat.Distribution) References {
	refs := References{}
	if landingPage != "" {
		refs[URL] = EscapeURL(landingPage)
	}

	var fallbackDownload string
	for _, d := range dists {
		raw := strings.TrimSpace(d.URL())
		format := strings.TrimSpace(d.Format)
		if raw == "" || format == "" {
			continue
		}
		link := EscapeURL(raw)

		switch {
		case strings.EqualFold(format, FormatArcGISREST):
			for _, st := range serviceTypes {
				if strings.Contains(link, st.marker) {
					refs.setOnce(st.uri, link)
					break
				}
			}
		case strings.EqualFold(format, FormatZIP):
			refs.setOnce(DownloadURL, link)
		case secondaryDownloads[strings.ToLower(format)]:
			if fallbackDownload == "" {
				fallbackDownload = link
			}
		}
	}
	if fallbackDownload != "" {
		refs.setOnce(DownloadURL, fallbackDownload)
	}
	return refs
}

func (r References) setOnce(uri, link string) {
	if _, ok := r[uri]; !ok {
		r[uri] = link
	}
}

// JSON serializes the references compactly with sorted keys and unescaped '&'.
func (r References) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string(r)); err != nil {
		return "", fmt.Errorf("failed to encode references: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
