package coverage

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Coverage report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
td.num { text-align: right; }
</style>
</head>
<body>
<h1>Coverage report</h1>
<table>
<tr><th>Name</th><th>Lines</th><th>Miss</th><th>Cover</th></tr>
{{range .Files}}<tr><td><a href="{{.Page}}">{{.Name}}</a></td><td class="num">{{.Lines}}</td><td class="num">{{.Miss}}</td><td class="num">{{.Cover}}</td></tr>
{{end}}<tr><td>TOTAL</td><td class="num">{{.TotalLines}}</td><td class="num">{{.TotalMiss}}</td><td class="num">{{.TotalCover}}</td></tr>
</table>
</body>
</html>
`))

var fileTemplate = template.Must(template.New("file").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { font-family: monospace; margin: 2em; }
span.line { display: block; white-space: pre; }
span.covered { background-color: #cfc; }
span.lineno { color: #888; margin-right: 1em; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p><a href="index.html">back to index</a></p>
{{range .Lines}}<span class="line{{if .Covered}} covered{{end}}"><span class="lineno">{{.Number}}</span>{{.Text}}</span>
{{end}}</body>
</html>
`))

type indexRow struct {
	Name  string
	Page  string
	Lines int
	Miss  int
	Cover string
}

type indexView struct {
	Files      []indexRow
	TotalLines int
	TotalMiss  int
	TotalCover string
}

type lineView struct {
	Number  int
	Text    string
	Covered bool
}

type fileView struct {
	Name  string
	Lines []lineView
}

// HTML renders the report tree for data into dir: an index page plus
// one page per source file with covered lines highlighted.
func (t *Tracker) HTML(dir string, data Data) error {
	if t == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create html report dir: %w", err)
	}

	files := append([]string(nil), t.sources...)
	sort.Strings(files)

	view := indexView{}
	for _, file := range files {
		total := t.coverableLines(file)
		covered := len(data[file])
		if covered > total {
			total = covered
		}
		page := pageName(file)
		view.Files = append(view.Files, indexRow{
			Name:  file,
			Page:  page,
			Lines: total,
			Miss:  total - covered,
			Cover: percent(covered, total),
		})
		view.TotalLines += total
		view.TotalMiss += total - covered

		if err := t.writeFilePage(filepath.Join(dir, page), file, data[file]); err != nil {
			return err
		}
	}
	view.TotalCover = percent(view.TotalLines-view.TotalMiss, view.TotalLines)

	out, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("create index page: %w", err)
	}
	defer out.Close()
	return indexTemplate.Execute(out, view)
}

func (t *Tracker) writeFilePage(path, file string, covered map[int]bool) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read source %s: %w", file, err)
	}

	view := fileView{Name: file}
	for i, line := range strings.Split(string(content), "\n") {
		view.Lines = append(view.Lines, lineView{
			Number:  i + 1,
			Text:    line,
			Covered: covered[i+1],
		})
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report page: %w", err)
	}
	defer out.Close()
	return fileTemplate.Execute(out, view)
}

var pageReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

func pageName(file string) string {
	return pageReplacer.Replace(strings.TrimPrefix(file, "./")) + ".html"
}
