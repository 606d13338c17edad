package pipeline

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/helpers"
)

// StatementRunner executes one SQL statement in the warehouse and waits for
// the job to finish.
type StatementRunner interface {
	RunStatement(ctx context.Context, sql string) error
}

// Transform is the downstream step run after every load succeeded. Each
// statement is a text template with {{.project}} and {{.dataset}} bound from
// configuration.
type Transform struct {
	runner     StatementRunner
	statements []string
	variables  map[string]interface{}
}

func NewTransform(runner StatementRunner, statements []string, project string, dataset string) *Transform {
	return &Transform{
		runner:     runner,
		statements: statements,
		variables: map[string]interface{}{
			"project": project,
			"dataset": dataset,
		},
	}
}

// Run renders and executes the statements in order, stopping at the first
// failure.
func (t *Transform) Run(ctx context.Context) error {
	for i, statement := range t.statements {
		sql, err := t.render(statement)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"statement": i,
		}).Infoln("running transform statement")
		if err := t.runner.RunStatement(ctx, sql); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transform) render(statement string) (string, error) {
	return helpers.MakeTemplateFile(statement, t.variables)
}
