package synth

import (
	"sort"
	"strings"
	"text/template"

	"github.com/alexisbeaulieu97/weave/internal/model"
)

// HTTPRouterSynthesizer emits a route table: five CRUD routes per entity
// plus one route per operation. Its fingerprint is sensitive only to
// entity/operation identities and schema references — not to fields,
// descriptions, or relations — so unrelated edits to an entity's
// documentation never invalidate the generated router.
type HTTPRouterSynthesizer struct{}

const httpRouterGeneratorID = "http_router"
const httpRouterVersion = "1.0.0"

var httpRouterTemplate = template.Must(template.New("generated_api").Parse(`// Code generated by the artifact synthesizer. DO NOT EDIT.
package generated

type Route struct {
	Method string
	Path   string
	Handler string
}

var Routes = []Route{
{{- range .Routes}}
	{Method: "{{.Method}}", Path: "{{.Path}}", Handler: "{{.Handler}}"},
{{- end}}
}
`))

type routeEntry struct {
	Method  string
	Path    string
	Handler string
}

func (HTTPRouterSynthesizer) ID() string      { return httpRouterGeneratorID }
func (HTTPRouterSynthesizer) Version() string { return httpRouterVersion }

func (s HTTPRouterSynthesizer) Produce(in Inputs) ([]model.ArtifactRecord, error) {
	var routes []routeEntry
	var relevant []string

	for _, e := range in.Registry.ListEntities() {
		base := "/" + strings.ToLower(e.Name)
		routes = append(routes,
			routeEntry{Method: "GET", Path: base, Handler: "List" + e.Name},
			routeEntry{Method: "POST", Path: base, Handler: "Create" + e.Name},
			routeEntry{Method: "GET", Path: base + "/{id}", Handler: "Read" + e.Name},
			routeEntry{Method: "PUT", Path: base + "/{id}", Handler: "Update" + e.Name},
			routeEntry{Method: "DELETE", Path: base + "/{id}", Handler: "Delete" + e.Name},
		)
		relevant = append(relevant, "entity:"+e.Name)
	}

	for _, op := range in.Registry.ListOperations() {
		path := "/operations/" + strings.ReplaceAll(op.Name, ".", "/")
		routes = append(routes, routeEntry{Method: "POST", Path: path, Handler: handlerName(op.Name)})
		relevant = append(relevant, "operation:"+op.Name+":"+op.InputSchemaName+"->"+op.OutputSchemaName)
	}

	sort.Strings(relevant)

	var buf strings.Builder
	if err := httpRouterTemplate.Execute(&buf, struct{ Routes []routeEntry }{routes}); err != nil {
		return nil, err
	}

	rec, err := fingerprintRecord(
		model.ArtifactRecord{RelativePath: "generated_api.go", Content: []byte(buf.String())},
		httpRouterGeneratorID, httpRouterVersion, "", relevant,
	)
	if err != nil {
		return nil, err
	}
	return []model.ArtifactRecord{rec}, nil
}

func handlerName(dottedOperationName string) string {
	segments := strings.Split(dottedOperationName, ".")
	for i, s := range segments {
		if s == "" {
			continue
		}
		segments[i] = strings.ToUpper(s[:1]) + s[1:]
	}
	return strings.Join(segments, "")
}
