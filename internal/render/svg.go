package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/agenthands/eventlens/internal/core/viewport"
)

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" data-mode="{{.Mode}}">
<rect width="100%" height="100%" fill="{{.Background}}"/>
{{- if .Empty}}
<text x="{{.MidX}}" y="{{.MidY}}" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="16" fill="#666666">{{.Message}}</text>
{{- else}}
<defs>
{{- range .Markers}}
<marker id="{{.ID}}" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="{{.Color}}"/></marker>
{{- end}}
</defs>
<g transform="{{.Transform}}">
{{- range .Edges}}
<line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="{{.Color}}" stroke-width="{{$.StrokeWidth}}" marker-end="url(#{{.Marker}})" data-source="{{.Source}}" data-target="{{.Target}}"/>
{{- end}}
{{- range .Nodes}}
<g class="node" data-id="{{.ID}}">
<ellipse cx="{{.X}}" cy="{{.Y}}" rx="{{.RX}}" ry="{{.RY}}" fill="{{.Fill}}" stroke="{{.Stroke}}" stroke-width="{{$.StrokeWidth}}"/>
<text x="{{.X}}" y="{{.Y}}" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="{{.FontSize}}" fill="{{.TextColor}}">{{.Text}}</text>
</g>
{{- end}}
</g>
{{- end}}
</svg>
`

var tmpl = template.Must(template.New("graph").Parse(svgTemplate))

type edge struct {
	viewport.EdgeShape
	Marker string
}

type marker struct {
	ID    string
	Color string
}

type svgData struct {
	Mode        string
	Width       float64
	Height      float64
	MidX        float64
	MidY        float64
	Background  string
	Empty       bool
	Message     string
	Transform   string
	StrokeWidth float64
	Markers     []marker
	Nodes       []viewport.NodeShape
	Edges       []edge
}

// Renderer draws a viewport as SVG: nodes as labelled ellipses, edges as
// arrows coloured by group, all under the view's zoom and centre.
type Renderer struct {
	Painter    *viewport.Painter
	Background string
}

func NewRenderer(painter *viewport.Painter) *Renderer {
	return &Renderer{Painter: painter, Background: "#fafafa"}
}

// Transform maps graph coordinates so (cx, cy) lands in the middle of the
// view at the given zoom.
func Transform(v viewport.View) string {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return fmt.Sprintf("translate(%g %g) scale(%g) translate(%g %g)",
		v.Width/2, v.Height/2, zoom, -v.CenterX, -v.CenterY)
}

func (r *Renderer) Render(w io.Writer, v viewport.View) error {
	data := svgData{
		Mode:       string(v.Mode),
		Width:      v.Width,
		Height:     v.Height,
		MidX:       v.Width / 2,
		MidY:       v.Height / 2,
		Background: r.Background,
		Empty:      v.Empty || v.Graph == nil,
		Message:    v.Message,
	}

	if !data.Empty {
		zoom := v.Zoom
		if zoom <= 0 {
			zoom = 1
		}
		nodes, edges := r.Painter.Paint(v.Graph, zoom)
		data.Nodes = nodes
		data.Transform = Transform(v)
		data.StrokeWidth = 1 / zoom

		markerIDs := map[string]string{}
		for _, e := range edges {
			id, ok := markerIDs[e.Color]
			if !ok {
				id = fmt.Sprintf("arrow-%d", len(markerIDs))
				markerIDs[e.Color] = id
				data.Markers = append(data.Markers, marker{ID: id, Color: e.Color})
			}
			data.Edges = append(data.Edges, edge{EdgeShape: e, Marker: id})
		}
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render svg: %w", err)
	}
	return nil
}

func (r *Renderer) RenderString(v viewport.View) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
