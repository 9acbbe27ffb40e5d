package template

import (
	stdtemplate "html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/gosimple/slug"
	blackfriday "github.com/russross/blackfriday/v2"
)

type Template struct {
	templates *stdtemplate.Template
}

// NewTemplate parses every views/*.html file in fsys.
func NewTemplate(fsys fs.FS) *Template {
	funcMap := stdtemplate.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"humannumber": func(n int64) string {
			return humanize.Comma(n)
		},
		"humansalary": func(f float64) string {
			return humanize.Commaf(f)
		},
		"markdown": MarkdownToHTML,
		"slug": func(s string) string {
			return slug.Make(s)
		},
		"lower": strings.ToLower,
		"query": func(pairs ...interface{}) stdtemplate.URL {
			v := url.Values{}
			for i := 0; i+1 < len(pairs); i += 2 {
				key, _ := pairs[i].(string)
				val := strings.TrimSpace(toString(pairs[i+1]))
				if key != "" && val != "" && val != "0" {
					v.Set(key, val)
				}
			}
			return stdtemplate.URL("?" + v.Encode())
		},
	}
	return &Template{
		templates: stdtemplate.Must(stdtemplate.New("stdtmpl").Funcs(funcMap).ParseFS(fsys, "views/*.html")),
	}
}

func (t *Template) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return t.templates.ExecuteTemplate(w, name, data)
}

func (t *Template) MarkdownToHTML(s string) stdtemplate.HTML {
	return MarkdownToHTML(s)
}

func MarkdownToHTML(s string) stdtemplate.HTML {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink |
			blackfriday.NofollowLinks |
			blackfriday.NoreferrerLinks |
			blackfriday.HrefTargetBlank,
	})
	return stdtemplate.HTML(blackfriday.Run([]byte(s), blackfriday.WithRenderer(renderer)))
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "true"
		}
		return ""
	}
	return ""
}
