package readers

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

// The brands/talent/franchise export is a fixed four-column HTML table.
var htmlTableColumns = [4]string{"_ID", "NAME", "SHORT_NAME", "TYPE"}

// HTMLTable scans the document for its table, skips the header row, and maps
// every remaining row with exactly four cells onto the fixed schema
// (_ID, NAME, SHORT_NAME, TYPE). Rows with any other cell count are dropped;
// the drop count is logged but never an error. A document without a table is
// a ParseError.
func HTMLTable(r io.Reader) (*data.Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &data.ParseError{Format: "html", Err: err}
	}

	table := findFirst(doc, "table")
	if table == nil {
		return nil, &data.ParseError{Format: "html", Err: fmt.Errorf("no <table> element in document")}
	}

	var rows [][4]string
	dropped := 0
	first := true
	for _, tr := range findAll(table, "tr") {
		if first { // header row
			first = false
			continue
		}
		cells := cellTexts(tr)
		if len(cells) != len(htmlTableColumns) {
			dropped++
			continue
		}
		rows = append(rows, [4]string{cells[0], cells[1], cells[2], cells[3]})
	}

	if dropped > 0 {
		log.WithFields(log.Fields{
			"rows":    len(rows),
			"dropped": dropped,
		}).Infoln("dropped table rows without exactly four cells")
	}

	columns := make([]data.Column, len(htmlTableColumns))
	for i, name := range htmlTableColumns {
		values := make([]data.Value, len(rows))
		for j, row := range rows {
			values[j] = data.StringValue(row[i])
		}
		columns[i] = data.Column{Name: name, Values: values}
	}

	return data.NewTable(columns)
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return // do not descend into nested tables' rows
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

// cellTexts returns the trimmed text content of each <td> in a row.
func cellTexts(tr *html.Node) []string {
	var cells []string
	for _, td := range findAll(tr, "td") {
		cells = append(cells, strings.TrimSpace(textContent(td)))
	}
	return cells
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
