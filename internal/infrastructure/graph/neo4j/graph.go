package neo4j

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/resilience"
)

// projectDocumentQuery upserts the case and document nodes and replaces the
// document's deadline nodes.
const projectDocumentQuery = `
MERGE (c:Case {id: $case.id})
SET c += $case
MERGE (d:Document {id: $document.id})
SET d += $document
MERGE (c)-[:HAS_DOCUMENT]->(d)
WITH d
OPTIONAL MATCH (d)-[:HAS_DEADLINE]->(old:Deadline)
DETACH DELETE old
WITH DISTINCT d
UNWIND $deadlines AS deadline
CREATE (x:Deadline)
SET x = deadline
CREATE (d)-[:HAS_DEADLINE]->(x)
`

type queryRunner func(ctx context.Context, query string, params map[string]any) error

// CaseGraph projects processed documents into a Case→Document→Deadline graph.
type CaseGraph struct {
	driver   neo4j.DriverWithContext
	run      queryRunner
	executor *resilience.Executor
}

type Options struct {
	URI      string
	User     string
	Password string
	Database string
	Executor *resilience.Executor
}

func New(ctx context.Context, opts Options) (*CaseGraph, error) {
	driver, err := neo4j.NewDriverWithContext(opts.URI, neo4j.BasicAuth(opts.User, opts.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("init neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	database := opts.Database
	run := func(ctx context.Context, query string, params map[string]any) error {
		_, err := neo4j.ExecuteQuery(ctx, driver, query, params,
			neo4j.EagerResultTransformer,
			neo4j.ExecuteQueryWithDatabase(database),
			neo4j.ExecuteQueryWithWritersRouting(),
		)
		return err
	}
	return &CaseGraph{driver: driver, run: run, executor: opts.Executor}, nil
}

func (g *CaseGraph) Close(ctx context.Context) error {
	if g.driver == nil {
		return nil
	}
	return g.driver.Close(ctx)
}

func (g *CaseGraph) ProjectDocument(ctx context.Context, c domain.Case, doc domain.Document, deadlines []domain.Deadline) error {
	params := projectionParams(c, doc, deadlines)
	call := func(ctx context.Context) error {
		if err := g.run(ctx, projectDocumentQuery, params); err != nil {
			return fmt.Errorf("neo4j project document: %w", err)
		}
		return nil
	}

	var err error
	if g.executor != nil {
		err = g.executor.Execute(ctx, "neo4j.project_document", call, classifyNeo4jError)
	} else {
		err = call(ctx)
	}
	return resilience.WrapTemporary("neo4j project document", err, classifyNeo4jError)
}

func projectionParams(c domain.Case, doc domain.Document, deadlines []domain.Deadline) map[string]any {
	caseProps := map[string]any{
		"id":          c.ID,
		"action_type": c.ActionType,
		"status":      c.Status,
		"created_at":  c.CreatedAt.UTC(),
	}

	docProps := map[string]any{
		"id":          doc.ID,
		"filename":    doc.Filename,
		"mime_type":   doc.MimeType,
		"validated":   doc.Validated,
		"uploaded_at": doc.CreatedAt.UTC(),
	}
	if doc.Classified != nil {
		docProps["document_type"] = string(doc.Classified.DocumentType)
		if doc.Classified.ExtractedDate != nil {
			docProps["extracted_date"] = dbtype.Date(doc.Classified.ExtractedDate.In(time.UTC))
		}
	}
	if doc.Assessment != nil {
		docProps["proof_category"] = string(doc.Assessment.Category)
		docProps["relevance"] = int64(doc.Assessment.Relevance)
		docProps["is_essential"] = doc.Assessment.IsEssential
	}

	items := make([]any, 0, len(deadlines))
	for _, d := range deadlines {
		props := map[string]any{
			"deadline_type": string(d.Type),
			"description":   d.Description,
			"origin":        string(d.Origin),
			"confidence":    string(d.Confidence),
			"status":        string(d.Status),
		}
		if d.ID != "" {
			props["id"] = d.ID
		}
		if d.DueDate != nil {
			props["due_date"] = dbtype.Date(d.DueDate.In(time.UTC))
		}
		if d.DaysCount != nil {
			props["days_count"] = int64(*d.DaysCount)
		}
		items = append(items, props)
	}

	return map[string]any{
		"case":      caseProps,
		"document":  docProps,
		"deadlines": items,
	}
}

var classifyNeo4jError = resilience.TransientClassifier(isTransientNeo4jError)

func isTransientNeo4jError(err error) bool {
	if neo4j.IsRetryable(err) {
		return true
	}
	var connErr *neo4j.ConnectivityError
	return errors.As(err, &connErr)
}
