package domain

// URLSchemaFeature is the permission feature required by every recommendation endpoint.
const URLSchemaFeature = "notifications_feature"

// URLSchemaEndpoint declares the feature an API gateway requires for matching paths.
type URLSchemaEndpoint struct {
	Path        string   `json:"path"`
	Features    []string `json:"features"`
	IsRegex     bool     `json:"is_regex"`
	PostForRead bool     `json:"post_for_read"`
}

// URLSchema is the access schema published for the API gateway.
type URLSchema struct {
	Service   string              `json:"service"`
	Endpoints []URLSchemaEndpoint `json:"endpoints"`
}

// NewURLSchema builds the schema of the service: one regex rule covering every path
// below basePath.
func NewURLSchema(service, basePath string) URLSchema {
	return URLSchema{
		Service: service,
		Endpoints: []URLSchemaEndpoint{
			{
				Path:     "^" + basePath + "/",
				Features: []string{URLSchemaFeature},
				IsRegex:  true,
			},
		},
	}
}
