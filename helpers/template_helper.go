package helpers

import (
	"bytes"
	"text/template"
)

// MakeTemplateFile renders a text template against a variable map. Used to
// bind project/dataset names into the transform SQL statements.
func MakeTemplateFile(templateStr string, variables map[string]interface{}) (string, error) {
	t, err := template.New("sql").Parse(templateStr)
	if err != nil {
		return "", err
	}
	buf := &bytes.Buffer{}
	if err := t.Execute(buf, variables); err != nil {
		return "", err
	}
	return buf.String(), nil
}
