package gallery

import (
	"html/template"
	"io"
)

// Images are written without whitespace between tags so that puzzle slices
// line up edge to edge.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{range .Images}}<img src="{{.}}">{{end}}
</body>
</html>
`))

// RenderIndex writes an HTML page with one <img> per file, in order.
func RenderIndex(w io.Writer, title string, files []string) error {
	return indexTemplate.Execute(w, struct {
		Title  string
		Images []string
	}{
		Title:  title,
		Images: files,
	})
}
